package site

// pageTemplate is the HTML shell every page is rendered into.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} · {{.SiteName}}</title>
<link rel="stylesheet" href="{{.BasePath}}/style.css">
</head>
<body>
<header>
  <a class="site-name" href="{{.BasePath}}/index.html">{{.SiteName}}</a>
</header>
<div class="layout">
  <aside>{{.NavHTML}}</aside>
  <main>{{.Content}}</main>
</div>
</body>
</html>
`

// cssContent is the single stylesheet shipped with the site.
const cssContent = `
:root { --fg: #1f2328; --muted: #57606a; --border: #d0d7de; --accent: #0969da; }
* { box-sizing: border-box; }
body { margin: 0; color: var(--fg); font: 16px/1.6 -apple-system, "Segoe UI", sans-serif; }
header { padding: 12px 24px; border-bottom: 1px solid var(--border); }
.site-name { color: var(--fg); font-weight: 600; text-decoration: none; }
.layout { display: flex; gap: 32px; max-width: 1100px; margin: 0 auto; padding: 24px; }
aside { width: 260px; flex-shrink: 0; font-size: 14px; }
aside h3 { margin: 16px 0 4px; font-size: 13px; text-transform: uppercase; color: var(--muted); }
aside ul { margin: 0; padding-left: 16px; }
aside a { color: var(--accent); text-decoration: none; }
main { min-width: 0; flex: 1; }
main pre { background: #f6f8fa; padding: 12px; border-radius: 6px; overflow-x: auto; }
main code { font-family: ui-monospace, monospace; font-size: 85%; }
main h1, main h2 { border-bottom: 1px solid var(--border); padding-bottom: 4px; }
`
