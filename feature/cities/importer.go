package cities

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"puzzled-pint-map/core/geocode"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// CoordinatePrompt asks an operator for coordinates the provider could not find.
// A nil point with a nil error means "leave the city without coordinates".
type CoordinatePrompt interface {
	Coordinates(name string) (*geocode.Point, error)
}

// ParseCityList extracts one record per link of the city list page. Every city
// starts out defunct until an event proves otherwise.
func ParseCityList(r io.Reader) ([]CityRecord, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("cities: failed to parse city list: %w", err)
	}

	var records []CityRecord
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href, ok := attr(n, "href")
			name := strings.TrimSpace(text(n))
			if ok && name != "" {
				records = append(records, CityRecord{
					Name:           name,
					URL:            href,
					Status:         StatusDefunct,
					EventIDs:       EventSet{},
					RemoteEventIDs: EventSet{},
				})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return records, nil
}

// Importer builds a registry from the city list page.
type Importer struct {
	gateway geocode.Gateway
	prompt  CoordinatePrompt
	logger  *zap.Logger
}

// NewImporter creates an importer. prompt may be nil for unattended imports.
func NewImporter(gateway geocode.Gateway, prompt CoordinatePrompt, logger *zap.Logger) *Importer {
	return &Importer{gateway: gateway, prompt: prompt, logger: logger}
}

// Import parses the page and geocodes every city name.
// Provider failures other than "not found" abort the import.
func (i *Importer) Import(ctx context.Context, r io.Reader) ([]CityRecord, error) {
	records, err := ParseCityList(r)
	if err != nil {
		return nil, err
	}

	for idx := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := &records[idx]

		loc, err := i.gateway.Geocode(ctx, rec.Name)
		switch {
		case err == nil:
			p := loc.Point()
			rec.Coordinates = &p
			continue
		case !errors.Is(err, geocode.ErrNotFound):
			return nil, fmt.Errorf("cities: failed to geocode %q: %w", rec.Name, err)
		}

		i.logger.Warn("Could not find location for city", zap.String("city", rec.Name))
		if i.prompt == nil {
			continue
		}
		p, err := i.prompt.Coordinates(rec.Name)
		if err != nil {
			return nil, err
		}
		if p == nil {
			i.logger.Info("No coordinates entered, leaving city without coordinates", zap.String("city", rec.Name))
			continue
		}
		rec.Coordinates = p
	}

	return records, nil
}

// ReaderPrompt reads "lat,lon" answers line by line, typically from stdin.
type ReaderPrompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReaderPrompt creates a prompt reading from in and writing questions to out.
func NewReaderPrompt(in io.Reader, out io.Writer) *ReaderPrompt {
	return &ReaderPrompt{in: bufio.NewReader(in), out: out}
}

// Coordinates asks for the coordinates of name. Blank input skips the city.
func (p *ReaderPrompt) Coordinates(name string) (*geocode.Point, error) {
	fmt.Fprintf(p.out, "Could not find location for %s.\nEnter coordinates: ", name)

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	latText, lonText, ok := strings.Cut(line, ",")
	if !ok {
		return nil, fmt.Errorf("cities: expected \"lat,lon\", got %q", line)
	}
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(lonText), 64)
	if latErr != nil || lonErr != nil {
		return nil, fmt.Errorf("cities: expected \"lat,lon\", got %q", line)
	}
	point := geocode.Point{Latitude: lat, Longitude: lon}
	if !point.Valid() {
		return nil, fmt.Errorf("cities: coordinates out of range: %q", line)
	}
	return &point, nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
