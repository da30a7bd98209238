// Package mail renders the HTML bodies of the transactional emails.
package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/unimeet/unimeet-api/internal/domain/entity"
)

var eventNotificationTmpl = template.Must(template.New("eventNotification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9f9f9;">
    <div style="background-color: #4CAF50; color: white; padding: 20px; text-align: center;">
      <h1>New Event Announcement</h1>
    </div>
    <div style="background-color: white; padding: 30px;">
      <p>Hi <strong>{{.UserName}}</strong>,</p>
      <p>The club you follow, <strong>{{.ClubName}}</strong>, has published a new event!</p>
      <div style="background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-left: 4px solid #4CAF50;">
        <h2>{{.Title}}</h2>
        <p><strong>Starts:</strong> {{.StartAt}}</p>
        <p><strong>Location:</strong> {{.Location}}</p>
        {{if .EndAt}}<p><strong>Ends:</strong> {{.EndAt}}</p>{{end}}
        <p><strong>Capacity:</strong> {{.Quota}} attendees</p>
        {{if .Description}}<p><strong>Details:</strong> {{.Description}}</p>{{end}}
      </div>
      <div style="text-align: center; margin: 30px 0;">
        <a href="{{.EventURL}}" style="display: inline-block; padding: 12px 30px; background-color: #4CAF50; color: white; text-decoration: none;">View Event</a>
      </div>
      <p style="font-size: 14px; color: #666;">
        You received this because you follow <strong>{{.ClubName}}</strong>.
        Manage your notifications in your <a href="{{.SettingsURL}}">account settings</a>.
      </p>
    </div>
    <div style="text-align: center; margin-top: 20px; font-size: 12px; color: #777;">
      <p>UniMeet - University Event Platform</p>
    </div>
  </div>
</body>
</html>`))

var verificationTmpl = template.Must(template.New("verification").Parse(`<p>Hi {{.Name}},</p>
<p>To activate your UniMeet account and set your first password, click the button below.</p>
<p style="text-align:center;margin:32px 0">
  <a href="{{.Link}}" style="display:inline-block;padding:12px 24px;background:#6a4cff;color:#fff;text-decoration:none;border-radius:6px;font-weight:600">Set Password</a>
</p>
<p>The link is single-use and valid until {{.ExpiresAt}} (UTC). If it expires, request a new verification from the login page.</p>
<p>If you did not request this, you can ignore this email.</p>
<p>The UniMeet Team</p>`))

var resetCodeTmpl = template.Must(template.New("resetCode").Parse(`<p>Hi {{.Name}},</p>
<p>You requested a password reset. Use the code below to set a new password.</p>
<p style="text-align:center;margin:32px 0;font-size:32px;font-weight:bold;letter-spacing:8px;color:#6a4cff">{{.Code}}</p>
<p>This code is valid for <strong>{{.Minutes}} minutes</strong>.</p>
<p>If you did not request this, you can ignore this email.</p>
<p>The UniMeet Team</p>`))

// EventNotificationBody renders the event-created notification email.
func EventNotificationBody(userName, clubName string, event *entity.Event, clientBaseURL string) (string, error) {
	data := struct {
		UserName    string
		ClubName    string
		Title       string
		StartAt     string
		EndAt       string
		Location    string
		Quota       int
		Description string
		EventURL    string
		SettingsURL string
	}{
		UserName:    userName,
		ClubName:    clubName,
		Title:       event.Title,
		StartAt:     event.StartAt.UTC().Format("02.01.2006 15:04"),
		Location:    event.Location,
		Quota:       event.Quota,
		Description: event.Description,
		EventURL:    fmt.Sprintf("%s/home?openEventId=%d", clientBaseURL, event.ID),
		SettingsURL: fmt.Sprintf("%s/settings", clientBaseURL),
	}
	if event.EndAt != nil {
		data.EndAt = event.EndAt.UTC().Format("02.01.2006 15:04")
	}

	var buf bytes.Buffer
	if err := eventNotificationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// VerificationBody renders the account verification email.
func VerificationBody(fullName, link string, expiresAt time.Time) (string, error) {
	name := fullName
	if name == "" {
		name = "Student"
	}

	var buf bytes.Buffer
	err := verificationTmpl.Execute(&buf, struct {
		Name      string
		Link      string
		ExpiresAt string
	}{
		Name:      name,
		Link:      link,
		ExpiresAt: expiresAt.UTC().Format("02.01.2006 15:04"),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ResetCodeBody renders the password reset code email.
func ResetCodeBody(fullName, code string, ttl time.Duration) (string, error) {
	name := fullName
	if name == "" {
		name = "Student"
	}

	var buf bytes.Buffer
	err := resetCodeTmpl.Execute(&buf, struct {
		Name    string
		Code    string
		Minutes int
	}{
		Name:    name,
		Code:    code,
		Minutes: int(ttl.Minutes()),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
