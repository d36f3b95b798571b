// Package settings holds the sample settings sections served by the
// hjarta-config command: notifications, user preferences and general
// application metadata.
package settings

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/0xalexb/hjarta-config/config/flat"
)

// Section names.
const (
	NotificationsSection = "Notifications"
	UserSection          = "User"
	GeneralSection       = "General"
)

// DefaultDoNotDisturb is the default quiet period for user notifications.
const DefaultDoNotDisturb = 8 * time.Hour

// UserNotificationSettings is nested under NotificationsSettings and is not a
// section of its own.
type UserNotificationSettings struct {
	UseMail            bool
	PreferredChannels  []string
	DoNotDisturbPeriod *time.Duration
	LastUpdated        *time.Time
	UserID             *uuid.UUID
}

// DefaultUserNotificationSettings returns mail enabled on the Email and SMS channels.
func DefaultUserNotificationSettings() UserNotificationSettings {
	quiet := DefaultDoNotDisturb

	return UserNotificationSettings{
		UseMail:            true,
		PreferredChannels:  []string{"Email", "SMS"},
		DoNotDisturbPeriod: &quiet,
	}
}

// Fields declares the notification preferences. Unset pointers flatten to null.
func (s UserNotificationSettings) Fields() []flat.Field {
	return []flat.Field{
		{Name: "UseMail", Value: s.UseMail},
		{Name: "PreferredChannels", Value: s.PreferredChannels},
		{Name: "DoNotDisturbPeriod", Value: deref(s.DoNotDisturbPeriod)},
		{Name: "LastUpdated", Value: deref(s.LastUpdated)},
		{Name: "UserId", Value: deref(s.UserID)},
	}
}

// NotificationsSettings is the "Notifications" section.
type NotificationsSettings struct {
	Enabled      bool
	UserSettings UserNotificationSettings
}

// SectionName returns NotificationsSection.
func (NotificationsSettings) SectionName() string { return NotificationsSection }

// Fields declares Enabled and the nested UserSettings.
func (s NotificationsSettings) Fields() []flat.Field {
	return []flat.Field{
		{Name: "Enabled", Value: s.Enabled},
		{Name: "UserSettings", Value: s.UserSettings},
	}
}

// UserSettings is the "User" section.
type UserSettings struct {
	DefaultLanguage string
	Theme           string
}

// SectionName returns UserSection.
func (UserSettings) SectionName() string { return UserSection }

// Fields declares the language and theme.
func (s UserSettings) Fields() []flat.Field {
	return []flat.Field{
		{Name: "DefaultLanguage", Value: s.DefaultLanguage},
		{Name: "Theme", Value: s.Theme},
	}
}

// GeneralSettings is the "General" section.
type GeneralSettings struct {
	AppName         string
	Version         string
	ApplicationURL  *url.URL
	MaxItemsPerPage int
	LoadCount       int
}

// SectionName returns GeneralSection.
func (GeneralSettings) SectionName() string { return GeneralSection }

// Fields declares the general settings. A nil ApplicationURL flattens to null.
func (s GeneralSettings) Fields() []flat.Field {
	var appURL any
	if s.ApplicationURL != nil {
		appURL = s.ApplicationURL.String()
	}

	return []flat.Field{
		{Name: "AppName", Value: s.AppName},
		{Name: "Version", Value: s.Version},
		{Name: "ApplicationUrl", Value: appURL},
		{Name: "MaxItemsPerPage", Value: s.MaxItemsPerPage},
		{Name: "LoadCount", Value: s.LoadCount},
	}
}

// deref returns *p, or an untyped nil so the field flattens to null.
func deref[T any](p *T) any {
	if p == nil {
		return nil
	}

	return *p
}
