package mockhelper

import (
	stderrors "errors"
	"os"

	"github.com/AndreyAkinshin/casemock/internal/project"
)

// FindProjectRoot walks up from the working directory to find
// .casemock/config.json and returns the directory containing it.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindProjectRootFrom(cwd)
}

// FindProjectRootFrom finds the project root starting from a specific directory.
func FindProjectRootFrom(startDir string) (string, error) {
	root, err := project.FindRootFrom(startDir)
	if stderrors.Is(err, project.ErrNoProjectRoot) {
		return "", &ProjectNotFoundError{StartDir: startDir}
	}
	return root, err
}

// ProjectNotFoundError indicates .casemock/config.json was not found.
type ProjectNotFoundError struct {
	StartDir string
}

func (e *ProjectNotFoundError) Error() string {
	return ".casemock/config.json not found (searched from " + e.StartDir + ")"
}

func (e *ProjectNotFoundError) Unwrap() error {
	return project.ErrNoProjectRoot
}

// CatalogPath returns the catalog path configured for the project at root.
func CatalogPath(root string) (string, error) {
	proj, err := project.LoadProjectFrom(root)
	if err != nil {
		return "", err
	}
	return proj.CatalogPath(), nil
}
