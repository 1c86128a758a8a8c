package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/droptrack/internal/model"
)

// validateProjectForm runs the edit-boundary checks shared by add and
// edit: a non-blank name, syntactically valid links, and no collision
// with an existing project. Duplicate matching excludes the record
// named by data.ID, so edits never collide with themselves.
func validateProjectForm(data model.FormData, projects []model.Project) error {
	if strings.TrimSpace(data.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	if v := model.ValidateProjectLinks(data); !v.Valid() {
		return fmt.Errorf("invalid link: %s", strings.Join(v.Errors, "; "))
	}
	if model.HasProjectDuplicate(projects, data) {
		return fmt.Errorf("a project with the same name, code, or link already exists")
	}
	return nil
}
