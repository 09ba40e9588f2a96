package main

import (
	"fmt"
	"strconv"
	"strings"
)

// polygonFlag collects repeated -polygon lat,lon values.
type polygonFlag [][]float64

func (p *polygonFlag) String() string {
	parts := make([]string, len(*p))
	for i, pt := range *p {
		parts[i] = fmt.Sprintf("%g,%g", pt[0], pt[1])
	}
	return strings.Join(parts, " ")
}

func (p *polygonFlag) Set(s string) error {
	lat, lon, ok := strings.Cut(s, ",")
	if !ok {
		return fmt.Errorf("expected lat,lon, got %q", s)
	}
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return fmt.Errorf("latitude: %w", err)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return fmt.Errorf("longitude: %w", err)
	}
	*p = append(*p, []float64{la, lo})
	return nil
}

// parseDevices reads "auto" or a comma separated list of device tags.
func parseDevices(s string) (tags []int64, auto bool, err error) {
	if strings.TrimSpace(s) == "auto" {
		return nil, true, nil
	}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		tag, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, false, fmt.Errorf("device tag %q: %w", item, err)
		}
		tags = append(tags, tag)
	}
	return tags, false, nil
}
