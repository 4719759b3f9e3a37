package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dcs-liberation/theater/internal/geo"
	"github.com/dcs-liberation/theater/pkg/core"
)

func stringArg(args []string, i int) (string, error) {
	if i >= len(args) || strings.TrimSpace(args[i]) == "" {
		return "", fmt.Errorf("%w: missing argument %d", ErrBadArgs, i)
	}
	return strings.TrimSpace(args[i]), nil
}

func pointArg(args []string, i int) (core.Point, error) {
	raw, err := stringArg(args, i)
	if err != nil {
		return core.Point{}, err
	}
	p, err := geo.PointFromString(raw)
	if err != nil {
		return core.Point{}, fmt.Errorf("%w: %q: %w", ErrBadArgs, raw, err)
	}
	return p, nil
}

// optional arguments fall back to def when absent or empty

func floatArg(args []string, i int, def float64) (float64, error) {
	if i >= len(args) || strings.TrimSpace(args[i]) == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(args[i]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrBadArgs, args[i])
	}
	return v, nil
}

func intArg(args []string, i int, def int) (int, error) {
	if i >= len(args) || strings.TrimSpace(args[i]) == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(args[i]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrBadArgs, args[i])
	}
	return v, nil
}

func boolArg(args []string, i int, def bool) (bool, error) {
	if i >= len(args) || strings.TrimSpace(args[i]) == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(args[i]))
	if err != nil {
		return false, fmt.Errorf("%w: %q is not a boolean", ErrBadArgs, args[i])
	}
	return v, nil
}
