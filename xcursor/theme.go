package xcursor

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"deedles.dev/bitmap"
	"deedles.dev/bitmap/geom"
)

var defaultLibraryPaths = []string{
	"~/.icons",
	"/usr/share/icons",
	"/usr/share/pixmaps",
	"~/.cursors",
	"/usr/share/cursors/xorg-x11",
	"/usr/X11R6/lib/X11/icons",
}

func libraryPaths() []string {
	if v, ok := os.LookupEnv("XCURSOR_PATH"); ok {
		return expandHome(filepath.SplitList(v))
	}

	v, ok := os.LookupEnv("XDG_DATA_HOME")
	if !ok || !filepath.IsAbs(v) {
		v = "~/.local/share"
	}
	return expandHome(append([]string{filepath.Join(v, "icons")}, defaultLibraryPaths...))
}

func expandHome(paths []string) []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return paths
	}
	for i, p := range paths {
		if rest, ok := strings.CutPrefix(p, "~/"); ok {
			paths[i] = filepath.Join(home, rest)
		}
	}
	return paths
}

// Theme is an Xcursor theme.
type Theme struct {
	Name    string
	Cursors map[string]*Cursor
}

// LoadTheme loads the named theme from the system search paths. It
// respects the $XCURSOR_PATH and $XDG_DATA_HOME environment variables
// when looking. If the theme has an index.theme file and that file
// lists other themes to inherit from, those themes are also loaded
// and their cursors are added to the returned theme.
func LoadTheme(name string) (*Theme, error) {
	var roots []fs.FS
	for _, p := range libraryPaths() {
		roots = append(roots, os.DirFS(p))
	}
	return loadTheme(roots, name)
}

// LoadThemeFS is like LoadTheme but searches only fsys, which should
// contain theme directories at its root.
func LoadThemeFS(fsys fs.FS, name string) (*Theme, error) {
	return loadTheme([]fs.FS{fsys}, name)
}

func loadTheme(roots []fs.FS, name string) (*Theme, error) {
	if name == "" {
		name = "default"
	}

	t := Theme{
		Name:    name,
		Cursors: make(map[string]*Cursor),
	}
	return &t, t.load(roots, name, make(map[string]struct{}))
}

func (t *Theme) load(roots []fs.FS, theme string, seen map[string]struct{}) error {
	if _, ok := seen[theme]; ok {
		return nil
	}
	seen[theme] = struct{}{}

	for _, root := range roots {
		err := t.loadDir(root, path.Join(theme, "cursors"))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load theme %q: %w", theme, err)
		}

		inherits, err := loadInherits(root, path.Join(theme, "index.theme"))
		if (err != nil) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load inherited themes: %w", err)
		}
		for _, theme := range inherits {
			if theme == "" {
				continue
			}
			err := t.load(roots, theme, seen)
			if err != nil {
				return fmt.Errorf("load inherited theme %q: %w", theme, err)
			}
		}

		break
	}

	return nil
}

func (t *Theme) loadDir(fsys fs.FS, dir string) error {
	ents, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}

	for _, ent := range ents {
		if _, ok := t.Cursors[ent.Name()]; ok {
			continue
		}
		if t := ent.Type().Type(); !t.IsRegular() && (t != fs.ModeSymlink) {
			continue
		}

		entpath := path.Join(dir, ent.Name())
		cur, err := decodeFS(fsys, entpath)
		if err != nil {
			if errors.Is(err, ErrBadMagic) {
				continue
			}
			return fmt.Errorf("load %q: %w", entpath, err)
		}

		t.Cursors[ent.Name()] = cur
	}

	return nil
}

func decodeFS(fsys fs.FS, name string) (*Cursor, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Lookup returns the first frame of the named cursor at the nominal
// size closest to size, along with its hotspot.
func (t *Theme) Lookup(name string, size int) (*bitmap.Bitmap, geom.Point[int], bool) {
	cur, ok := t.Cursors[name]
	if !ok {
		return nil, geom.Point[int]{}, false
	}

	img := cur.Images[cur.BestSize(size)]
	return img.Bitmap, img.Hot, true
}

func loadInherits(fsys fs.FS, index string) (inherits []string, err error) {
	file, err := fsys.Open(index)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s := bufio.NewScanner(file)
	for s.Scan() {
		line := s.Text()
		if !strings.HasPrefix(line, "Inherits") {
			continue
		}

		_, after, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		inherits = strings.FieldsFunc(after, func(c rune) bool {
			return (c == ':') || (c == ',') || (c == ';')
		})
		for i, v := range inherits {
			inherits[i] = strings.TrimSpace(v)
		}

		break
	}
	if err := s.Err(); err != nil {
		return inherits, fmt.Errorf("scan: %w", err)
	}

	return inherits, nil
}
