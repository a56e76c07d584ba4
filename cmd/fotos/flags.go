package main

import (
	"fmt"
	"strconv"
	"strings"

	"fotos/internal/models"
)

// geometryFlags collects the crop/rotation/scale flags shared by ingestion
// commands.
type geometryFlags struct {
	crop   string
	rotate float64
	scaleX float64
	scaleY float64
}

// parse converts the flag values into a geometry directive, or nil when no
// crop was requested.
func (f *geometryFlags) parse() (*models.Geometry, error) {
	if strings.TrimSpace(f.crop) == "" {
		if f.rotate != 0 || f.scaleX != 0 || f.scaleY != 0 {
			return nil, fmt.Errorf("--rotate and --scale require --crop")
		}
		return nil, nil
	}

	parts := strings.Split(f.crop, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("--crop must be x,y,width,height")
	}
	values := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("--crop component %q is not a number", part)
		}
		values[i] = v
	}
	if values[2] <= 0 || values[3] <= 0 {
		return nil, fmt.Errorf("--crop width and height must be positive")
	}

	return &models.Geometry{
		X:      values[0],
		Y:      values[1],
		Width:  values[2],
		Height: values[3],
		Rotate: f.rotate,
		ScaleX: f.scaleX,
		ScaleY: f.scaleY,
	}, nil
}
