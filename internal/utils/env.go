package utils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// LoadEnv loads the .env file at the project root, falling back to the
// working directory. A missing file is not an error; variables already set
// in the environment are never overridden.
func LoadEnv() error {
	dir, err := FindProjectRoot()
	if err != nil {
		if dir, err = os.Getwd(); err != nil {
			return err
		}
	}
	return LoadEnvFile(filepath.Join(dir, ".env"))
}

func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
