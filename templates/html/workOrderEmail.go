package templates

import (
	"fmt"
	"html"
	"strings"
)

// WorkOrderEmailData holds data for the work order email sent to the works department
type WorkOrderEmailData struct {
	ComplaintID string
	Address     string
	Latitude    float64
	Longitude   float64
	Severity    string
	Score       float64
	Description string
	ImageURL    string
}

// WorkOrderSubject returns the subject line for a work order
func WorkOrderSubject(d WorkOrderEmailData) string {
	return fmt.Sprintf("Repair order %s - %s severity", d.ComplaintID, d.Severity)
}

// RenderWorkOrderPlainText is the plain text alternative of RenderWorkOrderEmail
func RenderWorkOrderPlainText(d WorkOrderEmailData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Workers have been assigned to complaint %s.\n", d.ComplaintID)
	fmt.Fprintf(&b, "Location: %s (%.4f, %.4f)\n", d.Address, d.Latitude, d.Longitude)
	fmt.Fprintf(&b, "Severity: %s (%.1f/10)\n", d.Severity, d.Score)
	if d.Description != "" {
		fmt.Fprintf(&b, "Detection: %s\n", d.Description)
	}
	if d.ImageURL != "" {
		fmt.Fprintf(&b, "Photo: %s\n", d.ImageURL)
	}
	return b.String()
}

// RenderWorkOrderEmail generates branded HTML for a work order.
// Every field is HTML-escaped before it is placed in the page.
func RenderWorkOrderEmail(d WorkOrderEmailData) string {
	subject := html.EscapeString(WorkOrderSubject(d))

	var rows strings.Builder
	row := func(k, v string) {
		fmt.Fprintf(&rows, "<tr><th>%s</th><td>%s</td></tr>\n", k, html.EscapeString(v))
	}
	row("Complaint", d.ComplaintID)
	row("Address", d.Address)
	row("Coordinates", fmt.Sprintf("%.4f, %.4f", d.Latitude, d.Longitude))
	row("Severity", fmt.Sprintf("%s (%.1f/10)", d.Severity, d.Score))
	if d.Description != "" {
		row("Detection", d.Description)
	}

	photo := ""
	if d.ImageURL != "" {
		photo = fmt.Sprintf(`<p><a class="cta-button" href="%s">View photo</a></p>`, html.EscapeString(d.ImageURL))
	}

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <title>%s</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f4f4f5; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: #ea580c; padding: 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 22px; }
    .content { padding: 30px; color: #1f2937; line-height: 1.6; font-size: 15px; }
    th { text-align: left; padding-right: 16px; color: #6b7280; }
    .cta-button { display: inline-block; background: #ea580c; color: #fff; padding: 12px 24px; border-radius: 6px; text-decoration: none; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      <p>Workers have been assigned to the road damage below.</p>
      <table>
%s      </table>
      %s
    </div>
  </div>
</body>
</html>`, subject, subject, rows.String(), photo)
}
