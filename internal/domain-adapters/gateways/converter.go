package gateways

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mkrail/winmedia/internal/domain/entities"
)

// Converter drives the external unpack and conversion tools for the ESD
// pipeline: cabextract for CAB containers and wimlib-imagex for turning an
// ESD into a WIM.
type Converter struct {
	runner      *ToolRunner
	unpackTool  string
	convertTool string
	timeout     time.Duration
}

// NewConverter creates a converter from recipe configuration, falling back
// to the standard tool names when unset
func NewConverter(cfg entities.ConvertConfig) *Converter {
	c := &Converter{
		runner:      NewToolRunner(),
		unpackTool:  cfg.UnpackTool,
		convertTool: cfg.ConvertTool,
	}
	if c.unpackTool == "" {
		c.unpackTool = "cabextract"
	}
	if c.convertTool == "" {
		c.convertTool = "wimlib-imagex"
	}
	if cfg.TimeoutMinutes > 0 {
		c.timeout = time.Duration(cfg.TimeoutMinutes) * time.Minute
	}
	return c
}

// CheckTools verifies the required external tools before the pipeline does
// any network work. tar counts as a fallback for CAB extraction; the
// conversion tool has no substitute.
func (c *Converter) CheckTools() error {
	var missing []string

	if err := c.runner.LookPath(c.unpackTool); err != nil {
		if err := c.runner.LookPath("tar"); err != nil {
			missing = append(missing, fmt.Sprintf("%s (apt install cabextract / brew install cabextract)", c.unpackTool))
		}
	}
	if err := c.runner.LookPath(c.convertTool); err != nil {
		missing = append(missing, fmt.Sprintf("%s (apt install wimtools / brew install wimlib)", c.convertTool))
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Unpack extracts a CAB container into destDir
func (c *Converter) Unpack(ctx context.Context, cabPath, destDir string) error {
	_, err := c.runner.Run(ctx, RunConfig{
		Tool:        c.unpackTool,
		Args:        []string{"-q", "-d", destDir, cabPath},
		Timeout:     c.timeout,
		Description: "unpack " + cabPath,
	})
	return err
}

// ExportWIM exports every image in the ESD into a WIM file at wimPath
func (c *Converter) ExportWIM(ctx context.Context, esdPath, wimPath string) error {
	_, err := c.runner.Run(ctx, RunConfig{
		Tool:        c.convertTool,
		Args:        []string{"export", esdPath, "all", wimPath},
		Timeout:     c.timeout,
		Description: fmt.Sprintf("convert %s to %s", esdPath, wimPath),
	})
	return err
}
