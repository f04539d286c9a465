package storage

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/shhac/minisql/internal/domain"
)

const (
	definitionsFile = "connections.xml"
	// legacyFile is the pre-registry array of definitions. It is migrated
	// once and then renamed with legacyBackupSuffix.
	legacyFile         = "ConnectionDefinitions.xml"
	legacyBackupSuffix = ".bak"
	filePermission     = 0644
	dirPermission      = 0755
)

// XMLRepository implements Repository with a single XML file.
type XMLRepository struct {
	basePath string
	logger   *slog.Logger
}

// NewXMLRepository creates a repository rooted at basePath.
func NewXMLRepository(basePath string, logger *slog.Logger) *XMLRepository {
	return &XMLRepository{
		basePath: basePath,
		logger:   logger,
	}
}

// Path returns the location of the definitions file.
func (r *XMLRepository) Path() string {
	return filepath.Join(r.basePath, definitionsFile)
}

func (r *XMLRepository) legacyPath() string {
	return filepath.Join(r.basePath, legacyFile)
}

// LoadDefinitions reads connections.xml. If it does not exist but a legacy
// file does, the legacy definitions are upgraded and saved first.
func (r *XMLRepository) LoadDefinitions() (*domain.ConnectionDefinitionList, error) {
	data, err := readDecoded(r.Path())
	if os.IsNotExist(err) {
		return r.migrateLegacy()
	}
	if err != nil {
		return nil, fmt.Errorf("read definitions file: %w", err)
	}

	list, err := domain.FromXML(string(data))
	if err != nil {
		r.logger.Error("failed to parse definitions file",
			slog.String("path", r.Path()),
			slog.Any("error", err))
		return nil, err
	}

	r.logger.Debug("loaded connection definitions",
		slog.String("path", r.Path()),
		slog.Int("count", list.Len()))
	return list, nil
}

// SaveDefinitions writes the list atomically.
func (r *XMLRepository) SaveDefinitions(list *domain.ConnectionDefinitionList) error {
	if err := r.ensureBaseDir(); err != nil {
		return fmt.Errorf("ensure base directory: %w", err)
	}

	var buf bytes.Buffer
	if err := list.WriteXML(&buf); err != nil {
		return fmt.Errorf("serialize definitions: %w", err)
	}

	if err := atomicWriteFile(r.Path(), buf.Bytes(), filePermission); err != nil {
		return fmt.Errorf("write definitions file: %w", err)
	}

	r.logger.Debug("saved connection definitions",
		slog.String("path", r.Path()),
		slog.Int("count", list.Len()))
	return nil
}

// migrateLegacy performs the one-time upgrade from the legacy file, or
// returns an empty list when there is nothing to migrate.
func (r *XMLRepository) migrateLegacy() (*domain.ConnectionDefinitionList, error) {
	legacyPath := r.legacyPath()
	data, err := readDecoded(legacyPath)
	if os.IsNotExist(err) {
		r.logger.Debug("no definitions file, starting empty")
		return domain.NewConnectionDefinitionList(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read legacy definitions file: %w", err)
	}

	old, err := domain.ParseLegacyXML(string(data))
	if err != nil {
		return nil, err
	}
	list := domain.Upgrade(old, "")

	if err := r.SaveDefinitions(list); err != nil {
		return nil, fmt.Errorf("save upgraded definitions: %w", err)
	}
	if err := os.Rename(legacyPath, legacyPath+legacyBackupSuffix); err != nil {
		// The new file is authoritative from here on, so a stale legacy
		// file is harmless.
		r.logger.Warn("failed to rename legacy definitions file",
			slog.String("path", legacyPath),
			slog.Any("error", err))
	}

	r.logger.Info("upgraded legacy connection definitions",
		slog.String("from", legacyPath),
		slog.Int("count", list.Len()),
		slog.String("default", list.DefaultName))
	return list, nil
}

// readDecoded reads a file and converts it to UTF-8, honouring a UTF-16 or
// UTF-8 byte order mark. Files without a BOM are taken as UTF-8.
func readDecoded(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return decoded, nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp file
// in the same directory, syncing, then renaming over the target path.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := f.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

func (r *XMLRepository) ensureBaseDir() error {
	if err := os.MkdirAll(r.basePath, dirPermission); err != nil {
		return fmt.Errorf("create base directory: %w", err)
	}
	return nil
}
