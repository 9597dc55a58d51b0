package build

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// Rasterizer renders an SVG document to a size x size PNG.
type Rasterizer interface {
	Rasterize(ctx context.Context, svg []byte, size int) ([]byte, error)
}

// SpriteEncoder encodes a PNG as a PlantUML sprite definition named name.
type SpriteEncoder interface {
	Encode(ctx context.Context, name string, png []byte) (string, error)
}

// CommandRunner runs an external program and returns its output streams.
type CommandRunner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// ExecCommand runs name with os/exec.
func ExecCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// JavaTool runs an executable jar headless.
type JavaTool struct {
	Name string
	Java string
	Jar  string
	Run  CommandRunner
}

func (t JavaTool) run(ctx context.Context, args ...string) ([]byte, error) {
	run := t.Run
	if run == nil {
		run = ExecCommand
	}
	argv := append([]string{"-Djava.awt.headless=true", "-jar", t.Jar}, args...)
	stdout, stderr, err := run(ctx, t.Java, argv...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &pumlicons.ToolError{Tool: t.Name, Stderr: string(stderr), Err: err}
	}
	return stdout, nil
}

// Version runs the jar with -version, which proves that both java and the
// jar are usable.
func (t JavaTool) Version(ctx context.Context) (string, error) {
	out, err := t.run(ctx, "-version")
	return string(bytes.TrimSpace(out)), err
}

// BatikRasterizer renders SVGs with the Apache Batik rasterizer jar.
type BatikRasterizer struct {
	Tool JavaTool
}

// NewBatikRasterizer creates a rasterizer running jar with java.
func NewBatikRasterizer(java, jar string) *BatikRasterizer {
	return &BatikRasterizer{Tool: JavaTool{Name: "batik-rasterizer", Java: java, Jar: jar}}
}

// Rasterize writes svg to a scratch directory, runs batik on it and returns
// the PNG it produced.
func (r *BatikRasterizer) Rasterize(ctx context.Context, svg []byte, size int) ([]byte, error) {
	dir, err := os.MkdirTemp("", "pumlicons-batik-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "icon.svg")
	out := filepath.Join(dir, "icon.png")
	if err := os.WriteFile(in, svg, 0o644); err != nil {
		return nil, err
	}

	dim := strconv.Itoa(size)
	if _, err := r.Tool.run(ctx, "-d", out, "-w", dim, "-h", dim, "-m", "image/png", in); err != nil {
		return nil, err
	}
	png, err := os.ReadFile(out)
	if err != nil {
		return nil, &pumlicons.ToolError{Tool: r.Tool.Name, Err: fmt.Errorf("no output produced: %w", err)}
	}
	return png, nil
}

// PlantUMLEncoder encodes sprites with "plantuml -encodesprite 16z".
type PlantUMLEncoder struct {
	Tool JavaTool
}

// NewPlantUMLEncoder creates an encoder running jar with java.
func NewPlantUMLEncoder(java, jar string) *PlantUMLEncoder {
	return &PlantUMLEncoder{Tool: JavaTool{Name: "plantuml", Java: java, Jar: jar}}
}

// Encode returns the sprite definition printed by PlantUML. PlantUML names
// the sprite after the file, so the PNG is written as <name>.png.
func (e *PlantUMLEncoder) Encode(ctx context.Context, name string, png []byte) (string, error) {
	dir, err := os.MkdirTemp("", "pumlicons-sprite-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, name+".png")
	if err := os.WriteFile(in, png, 0o644); err != nil {
		return "", err
	}
	out, err := e.Tool.run(ctx, "-encodesprite", "16z", in)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
