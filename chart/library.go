package chart

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/go-theft-auto/tempo"
)

// Library finds charts under a songs directory. Each immediate
// subdirectory is one song; its first chart file (by name) is loaded.
type Library struct {
	fs   afero.Fs
	root string
	lang language.Tag
}

// NewLibrary creates a library over root on fs. A nil fs uses the OS file
// system.
func NewLibrary(fs afero.Fs, root string) *Library {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Library{fs: fs, root: root, lang: language.English}
}

// SetLanguage sets the collation language used to order titles.
func (l *Library) SetLanguage(tag language.Tag) {
	l.lang = tag
}

// Fs returns the file system the library reads from.
func (l *Library) Fs() afero.Fs {
	return l.fs
}

// Root returns the songs directory.
func (l *Library) Root() string {
	return l.root
}

// Scan loads every song directory's chart and returns them ordered by
// title. A missing songs directory yields no charts. Songs that fail to
// load are logged and skipped.
func (l *Library) Scan() ([]*ChartData, error) {
	exists, err := afero.DirExists(l.fs, l.root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", l.root, err)
	}
	if !exists {
		tempo.Logger().Info("songs directory not found", "dir", l.root)
		return nil, nil
	}

	entries, err := afero.ReadDir(l.fs, l.root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", l.root, err)
	}

	var charts []*ChartData
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(l.root, entry.Name())
		c, err := l.LoadSong(dir)
		if err != nil {
			tempo.Logger().Warn("skipping song", "dir", dir, "err", err)
			continue
		}
		charts = append(charts, c)
		tempo.Logger().Debug("loaded chart", "file", c.Filename, "notes", len(c.Notes))
	}

	SortByTitle(charts, l.lang)
	tempo.Logger().Info("song library scanned", "dir", l.root, "charts", len(charts))
	return charts, nil
}

// LoadSong loads the first chart file in dir.
func (l *Library) LoadSong(dir string) (*ChartData, error) {
	path, err := l.findChart(dir)
	if err != nil {
		return nil, err
	}
	return l.Load(path)
}

// Load reads and parses one chart file.
func (l *Library) Load(path string) (*ChartData, error) {
	content, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read chart: %w", err)
	}
	return Parse(path, content)
}

func (l *Library) findChart(dir string) (string, error) {
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.Mode().IsRegular() && IsChartFile(entry.Name()) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("%s: %w", dir, ErrNoChart)
}

// SortByTitle orders charts by display title using the collation rules of
// lang, ignoring case. Equal titles keep their order.
func SortByTitle(charts []*ChartData, lang language.Tag) {
	col := collate.New(lang, collate.IgnoreCase)
	slices.SortStableFunc(charts, func(a, b *ChartData) int {
		return col.CompareString(a.DisplayTitle(), b.DisplayTitle())
	})
}
