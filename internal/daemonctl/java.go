package daemonctl

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"kiln/internal/config"
)

// ResolveJava locates the java binary used to launch the daemon. Resolution
// order: configured jvm.java_home, the JAVA_HOME environment variable, then
// PATH lookup.
func ResolveJava(cfg *config.Config) (string, error) {
	if home := strings.TrimSpace(cfg.JVM.JavaHome); home != "" {
		candidate := filepath.Join(home, "bin", "java")
		if err := checkExecutable(candidate); err != nil {
			return "", fmt.Errorf("jvm.java_home does not provide a usable java: %w", err)
		}
		return candidate, nil
	}
	if home := strings.TrimSpace(os.Getenv("JAVA_HOME")); home != "" {
		candidate := filepath.Join(home, "bin", "java")
		if err := checkExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	path, err := exec.LookPath("java")
	if err != nil {
		return "", fmt.Errorf("java not found in PATH (set jvm.java_home): %w", err)
	}
	return path, nil
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if err := unix.Access(path, unix.X_OK); err != nil {
		return fmt.Errorf("%s is not executable: %w", path, err)
	}
	return nil
}
