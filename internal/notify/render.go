package notify

import (
	"fmt"
	"html"
	"strings"
)

// Render produces the subject and HTML body for a message.
func Render(msg *Message) (subject, body string, err error) {
	switch msg.Kind {
	case KindManagerAlert:
		subject = fmt.Sprintf("Action Required: %s submitted a request", msg.EmployeeName)
		body = wrapHTML(fmt.Sprintf(
			`<p>Hi,</p>
<p><strong>%s</strong> has submitted a new asset request that requires your approval.</p>
<p><strong>Items requested:</strong></p>
%s
<p>You can review and approve this request in the Manager Approvals section of the AWN Asset Portal.</p>`,
			html.EscapeString(msg.EmployeeName), renderItems(msg.Items)))
	case KindDispatched:
		subject = "Your items are on their way!"
		body = wrapHTML(fmt.Sprintf(
			`<p>Hi %s,</p>
<p>Great news — your asset request has been <strong>dispatched</strong>.</p>
<p><strong>Items dispatched:</strong></p>
%s
<p>If anything looks incorrect, please contact your manager or the AWN admin team.</p>`,
			html.EscapeString(msg.EmployeeName), renderItems(msg.Items)))
	case KindLowStock:
		subject = "Low stock alert for AWN assets"
		body = wrapHTML(fmt.Sprintf(
			`<p>Hi Admin,</p>
<p>The following items are currently at or below their low stock thresholds:</p>
%s
<p>Please review these items and arrange replenishment as needed.</p>`,
			renderLowStock(msg.LowStock)))
	default:
		return "", "", fmt.Errorf("unsupported notification kind %q", msg.Kind)
	}
	return subject, body, nil
}

func renderItems(items []ItemLine) string {
	if len(items) == 0 {
		return "<p>No items listed.</p>"
	}

	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, item := range items {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(item.Name))
		fmt.Fprintf(&b, " · Qty %d", item.Quantity)
		if item.Size != "" {
			fmt.Fprintf(&b, " · Size %s", html.EscapeString(item.Size))
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>")
	return b.String()
}

func renderLowStock(items []LowStockLine) string {
	if len(items) == 0 {
		return "<p>There are currently no low stock items.</p>"
	}

	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, item := range items {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(item.Name))
		fmt.Fprintf(&b, " · Stock %d", item.StockBalance)
		if item.LowStockThreshold != nil {
			fmt.Fprintf(&b, " (threshold %d)", *item.LowStockThreshold)
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>")
	return b.String()
}

func wrapHTML(content string) string {
	return fmt.Sprintf(
		`<div style="font-family:sans-serif;max-width:640px;margin:0 auto;">
<div style="background-color:#1B2B4B;color:#FFFFFF;padding:16px 20px;font-weight:600;">AWN Asset Portal</div>
<div style="padding:20px;font-size:14px;line-height:1.5;">
%s
</div>
</div>`, content)
}
