package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

func TestJavaTool_Arguments(t *testing.T) {
	var gotName string
	var gotArgs []string
	tool := JavaTool{Name: "plantuml", Java: "/usr/bin/java", Jar: "plantuml.jar", Run: func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		gotName, gotArgs = name, args
		return []byte("PlantUML version 1.2023.12\n"), nil, nil
	}}

	version, err := tool.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PlantUML version 1.2023.12", version)
	assert.Equal(t, "/usr/bin/java", gotName)
	assert.Equal(t, []string{"-Djava.awt.headless=true", "-jar", "plantuml.jar", "-version"}, gotArgs)
}

func TestJavaTool_FailureCarriesStderr(t *testing.T) {
	tool := JavaTool{Name: "batik-rasterizer", Java: "java", Jar: "batik.jar", Run: func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return nil, []byte("Error: Unable to access jarfile batik.jar\n"), errors.New("exit status 1")
	}}

	_, err := tool.run(context.Background(), "-d", "out.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, pumlicons.ErrToolFailed)

	var toolErr *pumlicons.ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "batik-rasterizer", toolErr.Tool)
	assert.Contains(t, toolErr.Stderr, "Unable to access jarfile")
}

func TestJavaTool_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tool := JavaTool{Name: "plantuml", Java: "java", Jar: "p.jar", Run: func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return nil, nil, errors.New("signal: killed")
	}}

	_, err := tool.run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatikRasterizer(t *testing.T) {
	r := NewBatikRasterizer("java", "batik-1.16/batik-rasterizer-1.16.jar")
	r.Tool.Run = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		require.Equal(t, []string{"-w", "64", "-h", "64", "-m", "image/png"}, args[5:11])
		in, err := os.ReadFile(args[11])
		require.NoError(t, err)
		return nil, nil, os.WriteFile(args[4], append([]byte("png:"), in...), 0o644)
	}

	out, err := r.Rasterize(context.Background(), []byte("<svg/>"), 64)
	require.NoError(t, err)
	assert.Equal(t, "png:<svg/>", string(out))
}

func TestBatikRasterizer_NoOutput(t *testing.T) {
	r := NewBatikRasterizer("java", "batik.jar")
	r.Tool.Run = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return nil, nil, nil
	}

	_, err := r.Rasterize(context.Background(), []byte("<svg/>"), 64)
	assert.ErrorIs(t, err, pumlicons.ErrToolFailed)
}

func TestPlantUMLEncoder(t *testing.T) {
	e := NewPlantUMLEncoder("java", "plantuml-mit-1.2023.12.jar")
	e.Tool.Run = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		require.Equal(t, []string{"-encodesprite", "16z"}, args[3:5])
		assert.Equal(t, "EC2.png", filepath.Base(args[5]))
		data, err := os.ReadFile(args[5])
		require.NoError(t, err)
		assert.Equal(t, "png", string(data))
		return []byte("sprite $EC2 [64x64/16z] {\n}\n"), nil, nil
	}

	sprite, err := e.Encode(context.Background(), "EC2", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "sprite $EC2 [64x64/16z] {\n}\n", sprite)
}
