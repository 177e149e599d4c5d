package report

// DashboardTemplate is the HTML template for the chart dashboard.
// It is embedded as a Go constant — no external file dependencies.
const DashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  :root {
    --bg: #f6f5f2;
    --card-bg: #ffffff;
    --text: #1c2a24;
    --muted: #6b7280;
    --border: #e5e7eb;
    --accent: #2d6a4f;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    color: var(--text);
    background: var(--bg);
    line-height: 1.6;
    max-width: 1320px;
    margin: 0 auto;
    padding: 24px;
  }
  h1 { font-size: 1.5rem; color: var(--accent); }
  .muted { color: var(--muted); font-size: 0.85rem; }

  .header {
    display: flex;
    justify-content: space-between;
    align-items: baseline;
    border-bottom: 3px solid var(--accent);
    padding-bottom: 12px;
    margin-bottom: 20px;
  }

  .grid {
    display: grid;
    grid-template-columns: repeat(auto-fill, minmax(320px, 1fr));
    gap: 16px;
  }
  .card {
    background: var(--card-bg);
    border: 1px solid var(--border);
    border-radius: 8px;
    padding: 16px;
  }
  .card h2 {
    font-size: 1rem;
    font-weight: 600;
    margin-bottom: 12px;
    padding-bottom: 6px;
    border-bottom: 1px solid var(--border);
  }
  .card svg { max-width: 100%; height: auto; }

  .footer {
    margin-top: 24px;
    padding-top: 12px;
    border-top: 1px solid var(--border);
  }

  @media print {
    body { background: #fff; }
    .card { break-inside: avoid; }
  }
</style>
</head>
<body>
  <div class="header">
    <h1>{{.Title}}</h1>
    <span class="muted">Generated {{.GeneratedAt}}</span>
  </div>

  <div class="grid">
  {{range .Cards}}
    <div class="card">
      <h2>{{.Title}}</h2>
      {{.SVG}}
    </div>
  {{end}}
  </div>

  <div class="footer muted">
    lightcharts &middot; server-rendered SVG
  </div>
</body>
</html>`
