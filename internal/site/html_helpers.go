package site

import (
	"fmt"
	"strings"
)

// htmlHead returns the common HTML head section with proper meta tags.
func htmlHead(title, description string) string {
	if description == "" {
		description = "Documentation site pages"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0, viewport-fit=cover">
	<meta name="description" content="%s">

	<!-- Open Graph / Social Media -->
	<meta property="og:type" content="website">
	<meta property="og:title" content="%s">
	<meta property="og:description" content="%s">

	<title>%s - Docs</title>
	%s
</head>`, escapeHTML(description), escapeHTML(title), escapeHTML(description), escapeHTML(title), commonCSS())
}

// commonCSS returns the shared CSS styles used across all pages.
func commonCSS() string {
	return `<style>
		:root { --bg: #f5f5f5; --surface: #fff; --text: #333; --muted: #666; --link: #0066cc;
			--accent-hover: #0052a3; --line: #e0e0e0; --rule: #a4bbc1;
			--warn-bg: #fff3cd; --warn-fg: #856404; --err-bg: #f8d7da; --err-fg: #721c24; }
		[data-theme="dark"] { --bg: #1a1a1a; --surface: #2d2d2d; --text: #e0e0e0; --muted: #b0b0b0; --link: #4d9fff;
			--accent-hover: #3d89ef; --line: #404040; --rule: #55656a;
			--warn-bg: #4a3a1a; --warn-fg: #ffd966; --err-bg: #4a1a1a; --err-fg: #ff6b6b; }
		body { font-family: system-ui, sans-serif; margin: 0; padding: 20px; line-height: 1.6; background: var(--bg); color: var(--text); }
		a { color: var(--link); }
		.container { max-width: 1200px; margin: 0 auto; }
		.doc-content-well { background: var(--surface); padding: 20px 30px; border-radius: 8px; }
		.nav { display: flex; gap: 15px; align-items: center; flex-wrap: wrap; margin-bottom: 30px; }
		.theme-toggle, .button { padding: 8px 16px; border: none; border-radius: 4px; background: var(--link); color: #fff; cursor: pointer; text-decoration: none; }
		.theme-toggle:hover, .button:hover { background: var(--accent-hover); }
		.notice { padding: 12px 16px; border-radius: 4px; margin: 15px 0; }
		.notice-warning { background: var(--warn-bg); color: var(--warn-fg); }
		.notice-error { background: var(--err-bg); color: var(--err-fg); }
		.empty { text-align: center; padding: 40px; color: var(--muted); }
	</style>`
}

// themeScript applies the saved light/dark theme and wires the toggle button.
func themeScript() string {
	return `<script>
		function applyTheme(theme) {
			document.documentElement.dataset.theme = theme;
			var button = document.querySelector('.theme-toggle');
			if (button) button.textContent = theme === 'dark' ? 'Light Mode' : 'Dark Mode';
		}
		function toggleTheme() {
			var next = document.documentElement.dataset.theme === 'dark' ? 'light' : 'dark';
			localStorage.setItem('theme', next);
			applyTheme(next);
		}
		applyTheme(localStorage.getItem('theme') || 'light');
	</script>`
}

// autoSubmitScript submits filter forms whenever one of their inputs changes.
func autoSubmitScript() string {
	return `<script>
		document.querySelectorAll('form[data-autosubmit]').forEach(function(form) {
			form.addEventListener('change', function() {
				form.submit();
			});
		});
	</script>`
}

// htmlFooter returns the common HTML footer with all scripts.
func htmlFooter() string {
	return themeScript() + autoSubmitScript() + `
</body>
</html>`
}

// buildNavigation returns the common navigation bar HTML.
func buildNavigation() string {
	return `<div class="nav">
			<a href="/">All Docs</a>
			<a href="/status-report">Status Report</a>
			<a href="/api/status-report">API (JSON)</a>
			<button class="theme-toggle" onclick="toggleTheme()" aria-label="Toggle theme">Dark Mode</button>
		</div>`
}

// escapeHTML escapes special HTML characters to prevent XSS.
func escapeHTML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}

// externalLink creates a safe link. Absolute URLs open in a new tab; anything
// that is neither http(s) nor site-relative is rendered as plain text.
func externalLink(url, text string) string {
	if !isSafeURL(url) {
		return escapeHTML(text)
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
			escapeHTML(url), escapeHTML(text))
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, escapeHTML(url), escapeHTML(text))
}

func isSafeURL(url string) bool {
	lower := strings.ToLower(url)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") ||
		(strings.HasPrefix(url, "/") && !strings.HasPrefix(url, "//"))
}

// pageCSS returns page-specific CSS styles.
func pageCSS(styles string) string {
	return fmt.Sprintf("<style>%s</style>", styles)
}
