package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"dirmod.dev/pkg/dirmod/internal/adapter"
	"dirmod.dev/pkg/dirmod/internal/controller"
	m "dirmod.dev/pkg/dirmod/internal/model"
)

// BaseArgs controls how relative directories are resolved.
type BaseArgs struct {
	// EnvVar names the variable holding the project root. Empty disables it.
	EnvVar string
	// FindManifest falls back to the nearest ancestor of the working
	// directory holding a manifest when EnvVar is unset.
	FindManifest bool
}

// ScanArgs contains the arguments shared by every scanning workflow.
type ScanArgs struct {
	Dirs    []m.Path
	Layout  m.Layout
	Base    BaseArgs
	Threads int
}

// GenerateArgs contains the arguments for emitting declarations.
type GenerateArgs struct {
	ScanArgs
	Format     m.Format
	Visibility string
	Header     bool
	// Output is the file to write. Empty writes to the UI.
	Output m.Path
}

// ListArgs contains the arguments for listing discovered modules.
type ListArgs struct {
	ScanArgs
}

// CheckArgs contains the arguments for verifying a generated file.
type CheckArgs struct {
	GenerateArgs
	Against m.Path
}

// Workflow drives scans on behalf of the CLI commands.
type Workflow interface {
	Generate(ctx context.Context, args GenerateArgs) error
	List(ctx context.Context, args ListArgs) error
	Check(ctx context.Context, args CheckArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.EnvAdapter
	adapter.ManifestReader
	adapter.OutputStore
	controller.UI
	Emitter
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	envAdapter adapter.EnvAdapter,
	manifestReader adapter.ManifestReader,
	outputStore adapter.OutputStore,
	ui controller.UI,
	emitter Emitter,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		EnvAdapter:      envAdapter,
		ManifestReader:  manifestReader,
		OutputStore:     outputStore,
		UI:              ui,
		Emitter:         emitter,
	}
}

func (w *workflow) Generate(ctx context.Context, args GenerateArgs) error {
	content, err := w.render(ctx, args)
	if err != nil {
		return err
	}

	if args.Output == "" {
		return w.DisplayGenerated(ctx, content)
	}

	changed, err := w.Save(args.Output, content)
	if err != nil {
		return fmt.Errorf("write %s: %w", args.Output, err)
	}

	slog.Info("generated declarations", "output", args.Output, "changed", changed)
	w.DisplayWritten(ctx, args.Output, changed)

	return nil
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	result, err := w.scan(ctx, args.ScanArgs)
	if err != nil {
		return err
	}

	return w.DisplayModules(ctx, result.groups)
}

func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	content, err := w.render(ctx, args.GenerateArgs)
	if err != nil {
		return err
	}

	existing, err := w.Load(args.Against)
	if err != nil {
		return fmt.Errorf("read %s: %w", args.Against, err)
	}

	if bytes.Equal(existing, content) {
		slog.Info("generated output is current", "path", args.Against)
		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(existing)),
		B:        difflib.SplitLines(string(content)),
		FromFile: string(args.Against),
		ToFile:   "generated",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("diff %s: %w", args.Against, err)
	}

	w.DisplayDiff(ctx, args.Against, diff)

	return fmt.Errorf("%s: %w", args.Against, ErrStale)
}

type scanResult struct {
	groups   []m.ModuleGroup
	manifest *adapter.Manifest
}

func (w *workflow) render(ctx context.Context, args GenerateArgs) ([]byte, error) {
	result, err := w.scan(ctx, args.ScanArgs)
	if err != nil {
		return nil, err
	}

	content, err := w.Emit(EmitArgs{
		Format:     args.Format,
		Visibility: args.Visibility,
		Header:     generatedHeader(args, result.manifest),
		Groups:     result.groups,
	})
	if err != nil {
		return nil, fmt.Errorf("emit: %w", err)
	}

	return content, nil
}

// scan runs one independent scan per directory. Results keep argument order.
func (w *workflow) scan(ctx context.Context, args ScanArgs) (scanResult, error) {
	if len(args.Dirs) == 0 {
		return scanResult{}, errors.New("no directories to scan")
	}

	base, err := w.resolveBase(args.Base)
	if err != nil {
		return scanResult{}, err
	}

	manifest := w.loadManifest(base)
	layout := w.layoutFor(args.Layout, base, manifest)

	slog.Debug("scanning", "dirs", args.Dirs, "base", base, "extension", layout.Extension)

	groups := make([]m.ModuleGroup, len(args.Dirs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(args.Threads, 1))

	for i, dir := range args.Dirs {
		i, dir := i, dir

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			root := w.resolveDir(base, dir)

			refs, err := NewScanner(w.SourceFSAdapter, layout).Scan(root)
			if err != nil {
				return fmt.Errorf("scan %s: %w", dir, err)
			}

			groups[i] = m.ModuleGroup{Root: root, Modules: refs}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return scanResult{}, err
	}

	return scanResult{groups: groups, manifest: manifest}, nil
}

func (w *workflow) resolveBase(args BaseArgs) (m.Path, error) {
	if args.EnvVar != "" {
		if dir, ok := w.LookupEnv(args.EnvVar); ok && dir != "" {
			return m.Path(dir), nil
		}
	}

	if !args.FindManifest {
		return "", nil
	}

	wd, err := w.WorkingDir()
	if err != nil {
		return "", fmt.Errorf("resolve base directory: %w", err)
	}

	root, err := w.FindProjectRoot(wd, adapter.ManifestFileName)
	if err != nil {
		return "", fmt.Errorf("resolve base directory: %w", err)
	}

	return root, nil
}

func (w *workflow) resolveDir(base, dir m.Path) m.Path {
	if base == "" || filepath.IsAbs(string(dir)) {
		return dir
	}

	return w.JoinPath(string(base), string(dir))
}

func (w *workflow) loadManifest(base m.Path) *adapter.Manifest {
	if base == "" {
		return nil
	}

	manifest, err := w.ReadManifest(base)
	if err != nil {
		if !errors.Is(err, adapter.ErrManifestNotFound) {
			slog.Warn("ignoring unreadable manifest", "dir", base, "error", err)
		}

		return nil
	}

	return manifest
}

// layoutFor reserves the exact file a manifest names as its library root.
// Files sharing its base name elsewhere in the tree stay modules.
func (w *workflow) layoutFor(layout m.Layout, base m.Path, manifest *adapter.Manifest) m.Layout {
	if manifest == nil || manifest.Lib == nil || manifest.Lib.Path == "" {
		return layout
	}

	libPath := m.Path(manifest.Lib.Path)
	if !filepath.IsAbs(string(libPath)) {
		libPath = w.JoinPath(string(base), string(libPath))
	}

	canonical, err := w.Canonicalize(libPath)
	if err != nil {
		slog.Debug("manifest library root not found", "path", libPath, "error", err)
		return layout
	}

	slog.Debug("reserving manifest library root", "path", canonical)

	reserved := make([]m.Path, 0, len(layout.ReservedFiles)+1)
	reserved = append(reserved, layout.ReservedFiles...)
	layout.ReservedFiles = append(reserved, canonical)

	return layout
}

func generatedHeader(args GenerateArgs, manifest *adapter.Manifest) string {
	if !args.Header {
		return ""
	}

	dirs := make([]string, 0, len(args.Dirs))
	for _, dir := range args.Dirs {
		dirs = append(dirs, string(dir))
	}

	header := fmt.Sprintf("// Code generated by dirmod from %s. DO NOT EDIT.", strings.Join(dirs, ", "))
	if manifest != nil && manifest.Package.Name != "" {
		header += "\n// crate: " + manifest.Package.Name
	}

	return header
}
