package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppDirName is the directory name used under the platform config dir.
const AppDirName = "unscramble"

// PathResolver finds word lists and config files relative to the
// executable, the working directory and the user config dir.
type PathResolver struct {
	executableDir string
	workDir       string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execDir, err := GetExecutableDir()
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}
	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}

	pr := &PathResolver{
		executableDir: execDir,
		workDir:       workDir,
		homeDir:       homeDir,
		configDir:     configDirFor(runtime.GOOS, homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, workDir=%s, configDir=%s",
		pr.executableDir, pr.workDir, pr.configDir)
	return pr, nil
}

// newPathResolverAt builds a resolver rooted at fixed dirs; used by tests.
func newPathResolverAt(executableDir, workDir, configDir string) *PathResolver {
	return &PathResolver{
		executableDir: executableDir,
		workDir:       workDir,
		homeDir:       workDir,
		configDir:     configDir,
	}
}

// configDirFor returns the appropriate config directory for the platform
func configDirFor(goos, homeDir string) string {
	switch goos {
	case "darwin":
		return filepath.Join(homeDir, ".config", AppDirName)
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppDirName)
		}
		return filepath.Join(homeDir, ".config", AppDirName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppDirName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppDirName)
	default:
		return filepath.Join(homeDir, "."+AppDirName)
	}
}

// ResolveWordList finds the word list file. Candidates, in order:
//  1. the path itself when absolute
//  2. relative to the working directory
//  3. relative to the executable directory
//  4. inside the config directory
func (pr *PathResolver) ResolveWordList(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no word list path given")
	}
	for _, candidate := range pr.wordListCandidates(path) {
		if IsRegularFile(candidate) {
			log.Debugf("Found word list: %s", candidate)
			return candidate, nil
		}
		log.Debugf("Word list candidate not found: %s", candidate)
	}
	return "", fmt.Errorf("word list %q not found: %w", path, os.ErrNotExist)
}

func (pr *PathResolver) wordListCandidates(path string) []string {
	if filepath.IsAbs(path) {
		return []string{path}
	}
	return []string{
		filepath.Join(pr.workDir, path),
		filepath.Join(pr.executableDir, path),
		filepath.Join(pr.configDir, path),
	}
}

// GetConfigPath returns the full path for a config file.
// It falls back to ~/.unscramble, the temp dir, and the executable dir
// when the config dir is not writable.
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	if pr.ensureConfigDir(pr.configDir) {
		return filepath.Join(pr.configDir, filename), nil
	}

	fallbackDirs := []string{
		filepath.Join(pr.homeDir, "."+AppDirName),
		filepath.Join(os.TempDir(), AppDirName),
		pr.executableDir,
	}
	for _, dir := range fallbackDirs {
		if pr.ensureConfigDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path, nil
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}

// ensureConfigDir creates the directory if it doesn't exist and tests writability
func (pr *PathResolver) ensureConfigDir(dir string) bool {
	status := CheckDirStatus(dir)
	if status.Error != nil {
		log.Debugf("Cannot create config directory %s: %v", dir, status.Error)
	}
	return status.Exists && status.Writable
}

// GetConfigDir returns the config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}
