package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// LookPathFunc resolves an executable name, like exec.LookPath.
type LookPathFunc func(string) (string, error)

// DetectOpener finds the command that hands a URL to the desktop's default
// handler. $BROWSER wins when it resolves.
func DetectOpener(goos string, getenv func(string) string, lookPath LookPathFunc) ([]string, bool) {
	if args := ParseCommand(getenv("BROWSER")); len(args) > 0 {
		if resolved, ok := resolveExecutable(args[0], lookPath); ok {
			args[0] = resolved
			return args, true
		}
	}

	var defaults [][]string
	switch strings.ToLower(goos) {
	case "windows":
		defaults = [][]string{
			{"rundll32", "url.dll,FileProtocolHandler"},
			{"cmd", "/c", "start", ""},
		}
	case "darwin":
		defaults = [][]string{{"open"}}
	default:
		defaults = [][]string{{"xdg-open"}, {"gio", "open"}, {"wslview"}}
	}

	for _, def := range defaults {
		if resolved, ok := resolveExecutable(def[0], lookPath); ok {
			return append([]string{resolved}, def[1:]...), true
		}
	}

	return nil, false
}

// DetectClipboard finds a command that copies stdin to the clipboard.
func DetectClipboard(goos string, lookPath LookPathFunc) ([]string, bool) {
	trySingle := func(candidates ...string) ([]string, bool) {
		for _, candidate := range candidates {
			if path, err := lookPath(candidate); err == nil && path != "" {
				return []string{path}, true
			}
		}
		return nil, false
	}

	if strings.EqualFold(goos, "windows") {
		if cmd, ok := trySingle("clip.exe", "clip"); ok {
			return cmd, true
		}
		for _, ps := range []string{"powershell", "powershell.exe", "pwsh"} {
			if path, err := lookPath(ps); err == nil && path != "" {
				return []string{path, "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}, true
			}
		}
	}

	if strings.EqualFold(goos, "linux") {
		if path, err := lookPath("xclip"); err == nil && path != "" {
			return []string{path, "-selection", "clipboard"}, true
		}
	}

	return trySingle("pbcopy", "wl-copy", "xsel", "xclip")
}

// ParseCommand splits a shell-like command line honouring single and double quotes.
func ParseCommand(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	inSingle := false
	inDouble := false

	for _, r := range cmd {
		switch r {
		case '\'':
			if inDouble {
				current.WriteRune(r)
			} else {
				inSingle = !inSingle
			}
			continue
		case '"':
			if inSingle {
				current.WriteRune(r)
			} else {
				inDouble = !inDouble
			}
			continue
		default:
			if !inSingle && !inDouble && unicode.IsSpace(r) {
				if current.Len() > 0 {
					args = append(args, current.String())
					current.Reset()
				}
				continue
			}
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}

	if len(args) > 0 {
		args[0] = expandUserPath(args[0])
	}

	return args
}

func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}

	sep := path[1]
	if sep != '/' && sep != '\\' {
		return path
	}
	return filepath.Join(home, path[2:])
}

func resolveExecutable(cmd string, lookPath LookPathFunc) (string, bool) {
	if cmd == "" || lookPath == nil {
		return "", false
	}
	path, err := lookPath(expandUserPath(cmd))
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}

func currentGOOS() string {
	return runtime.GOOS
}
