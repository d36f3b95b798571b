package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/0xalexb/hjarta-config/config/flat"
	"github.com/0xalexb/hjarta-config/config/source/pushed"
	"github.com/0xalexb/hjarta-config/config/source/rows"
)

// Section is a settings unit with its own section name and declared fields.
type Section interface {
	pushed.Settings
}

// Document lists sections as the top-level members of one object, so a set of
// sections can be flattened in a single pass.
type Document []Section

// Fields declares each section as a member named after the section.
func (d Document) Fields() []flat.Field {
	fields := make([]flat.Field, 0, len(d))

	for _, section := range d {
		fields = append(fields, flat.Field{Name: section.SectionName(), Value: section})
	}

	return fields
}

// Defaults returns every section with its default values.
func Defaults() Document {
	return Document{
		NotificationsSettings{UserSettings: DefaultUserNotificationSettings()},
		UserSettings{DefaultLanguage: "en", Theme: "light"},
		GeneralSettings{MaxItemsPerPage: 10},
	}
}

// Sample returns the demo settings as they would come out of a database, with
// loadCount recorded under General:LoadCount.
func Sample(loadCount int) []Section {
	user := DefaultUserNotificationSettings()
	user.UseMail = false

	return []Section{
		NotificationsSettings{Enabled: true, UserSettings: user},
		UserSettings{DefaultLanguage: "en", Theme: "dark"},
		GeneralSettings{
			AppName:         "CustomConfigApp",
			Version:         "1.0.0",
			MaxItemsPerPage: 50,
			LoadCount:       loadCount,
		},
	}
}

// Flatten flattens every section under its section name.
func Flatten(sections ...Section) flat.Mapping {
	return flat.Flatten(Document(sections), "")
}

// Rows encodes each section as one row keyed by its section name, with the
// section's entries as a JSON object. Reading the rows back through
// rows.FlattenRow yields the same entries as Flatten.
func Rows(sections ...Section) ([]rows.Row, error) {
	result := make([]rows.Row, 0, len(sections))

	for _, section := range sections {
		tree, ok := flat.Unflatten(flat.Flatten(section, ""), "")
		if !ok {
			continue
		}

		blob, err := json.Marshal(tree)
		if err != nil {
			return nil, fmt.Errorf("encode section %q: %w", section.SectionName(), err)
		}

		result = append(result, rows.Row{Key: section.SectionName(), Value: string(blob)})
	}

	return result, nil
}

// Publisher pushes freshly built samples into a registry, counting loads.
type Publisher struct {
	registry *pushed.Registry
	loads    atomic.Int64
}

// NewPublisher creates a Publisher for registry.
func NewPublisher(registry *pushed.Registry) *Publisher {
	return &Publisher{registry: registry}
}

// Publish pushes a new sample generation and returns its load count.
func (p *Publisher) Publish(ctx context.Context) (int, error) {
	count := int(p.loads.Add(1))

	sections := Sample(count)
	units := make([]pushed.Settings, 0, len(sections))

	for _, section := range sections {
		units = append(units, section)
	}

	err := p.registry.SetData(ctx, units...)
	if err != nil {
		return count, fmt.Errorf("publish settings: %w", err)
	}

	return count, nil
}
