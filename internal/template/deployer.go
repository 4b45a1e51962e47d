package template

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nebulis-dev/nebulis/internal/defs"
)

// dotPrefix marks template files deployed as dotfiles (dot_env -> .env).
// go:embed skips real dotfiles unless every pattern uses all:.
const dotPrefix = "dot_"

// Deployer extracts the project tree from an embedded filesystem and writes
// it under a project root.
type Deployer interface {
	// Deploy writes every template under projectRoot and returns the
	// slash-separated paths it wrote. Files ending in .tmpl are rendered
	// with tmplCtx and saved without the suffix. Existing files are kept
	// unless the deployer was created with force.
	Deploy(ctx context.Context, projectRoot string, tmplCtx *TemplateContext) ([]string, error)

	// ExtractTemplate returns the raw content of a single template by name.
	ExtractTemplate(name string) ([]byte, error)

	// ListTemplates returns the deployment target paths of all templates.
	ListTemplates() []string
}

type deployer struct {
	fsys        fs.FS
	renderer    Renderer // optional; without it .tmpl files are copied raw
	forceUpdate bool
}

// DeployerOption configures a Deployer.
type DeployerOption func(*deployer)

// WithRenderer renders .tmpl files through r.
func WithRenderer(r Renderer) DeployerOption {
	return func(d *deployer) { d.renderer = r }
}

// WithForceUpdate overwrites files that already exist at the destination.
func WithForceUpdate(force bool) DeployerOption {
	return func(d *deployer) { d.forceUpdate = force }
}

// NewDeployer creates a Deployer backed by fsys.
// In production fsys comes from go:embed; in tests use testing/fstest.MapFS.
func NewDeployer(fsys fs.FS, opts ...DeployerOption) Deployer {
	d := &deployer{fsys: fsys}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDeployerWithRenderer creates a Deployer that renders .tmpl files using r.
func NewDeployerWithRenderer(fsys fs.FS, r Renderer) Deployer {
	return NewDeployer(fsys, WithRenderer(r))
}

// Deploy walks the filesystem and writes every file to projectRoot.
func (d *deployer) Deploy(ctx context.Context, projectRoot string, tmplCtx *TemplateContext) ([]string, error) {
	projectRoot = filepath.Clean(projectRoot)

	var written []string
	walkErr := fs.WalkDir(d.fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path == "." || entry.IsDir() {
			return nil
		}

		destRelPath := targetPath(path)
		if err := validateDeployPath(projectRoot, destRelPath); err != nil {
			return err
		}

		var content []byte
		if strings.HasSuffix(path, ".tmpl") && d.renderer != nil && tmplCtx != nil {
			rendered, renderErr := d.renderer.Render(path, tmplCtx)
			if renderErr != nil {
				return fmt.Errorf("template render %q: %w", path, renderErr)
			}
			content = rendered
		} else {
			raw, readErr := fs.ReadFile(d.fsys, path)
			if readErr != nil {
				return fmt.Errorf("template deploy read %q: %w", path, readErr)
			}
			content = raw
		}

		destPath := filepath.Join(projectRoot, filepath.FromSlash(destRelPath))

		// Keep files the user already has unless forced.
		if !d.forceUpdate {
			if _, statErr := os.Stat(destPath); statErr == nil {
				return nil
			}
		}

		destDir := filepath.Dir(destPath)
		if err := os.MkdirAll(destDir, defs.DirPerm); err != nil {
			return fmt.Errorf("template deploy mkdir %q: %w", destDir, err)
		}

		if err := os.WriteFile(destPath, content, defs.FilePerm); err != nil {
			return fmt.Errorf("template deploy write %q: %w", destPath, err)
		}
		written = append(written, destRelPath)
		return nil
	})
	if walkErr != nil {
		return written, walkErr
	}
	return written, nil
}

// ExtractTemplate returns the content of a single named template.
func (d *deployer) ExtractTemplate(name string) ([]byte, error) {
	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return data, nil
}

// ListTemplates returns sorted deployment target paths of all files in the FS.
func (d *deployer) ListTemplates() []string {
	var list []string

	_ = fs.WalkDir(d.fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == "." || entry.IsDir() {
			return nil
		}
		list = append(list, targetPath(path))
		return nil
	})

	return list
}

// targetPath maps a template path to its deployed path: the .tmpl suffix is
// dropped and a dot_ prefix on any segment becomes a leading dot.
func targetPath(path string) string {
	path = strings.TrimSuffix(path, ".tmpl")
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if rest, ok := strings.CutPrefix(seg, dotPrefix); ok && rest != "" {
			segments[i] = "." + rest
		}
	}
	return strings.Join(segments, "/")
}

// validateDeployPath ensures a template path does not escape projectRoot.
func validateDeployPath(projectRoot, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}

	if strings.HasPrefix(cleaned, "..") || strings.Contains(cleaned, string(filepath.Separator)+"..") {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absProjectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}

	absPath := filepath.Join(absProjectRoot, cleaned)
	if !strings.HasPrefix(absPath, absProjectRoot+string(filepath.Separator)) && absPath != absProjectRoot {
		return fmt.Errorf("%w: %q escapes project root", ErrPathTraversal, relPath)
	}

	return nil
}
