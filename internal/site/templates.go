package site

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Title }} — {{ .SiteName }}</title>
<link rel="stylesheet" href="{{ .BasePath }}style.css">
</head>
<body>
<div class="layout">
<nav class="sidebar">
<div class="brand"><a href="{{ .BasePath }}index.html">{{ .SiteName }}</a></div>
<input type="search" id="search-box" placeholder="Search datasets…" autocomplete="off">
<div id="search-results"></div>
{{ .NavHTML }}
</nav>
<main class="content">
{{ .Content }}
</main>
</div>
<script>window.basePath = "{{ .BasePath }}";</script>
<script src="{{ .BasePath }}script.js"></script>
</body>
</html>
`

const cssContent = `:root {
  --sidebar-bg: #f6f8fa;
  --border: #d0d7de;
  --accent: #0969da;
  --text: #1f2328;
  --muted: #656d76;
}
* { box-sizing: border-box; }
body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
  color: var(--text);
  line-height: 1.5;
}
.layout { display: flex; min-height: 100vh; }
.sidebar {
  width: 280px;
  flex-shrink: 0;
  background: var(--sidebar-bg);
  border-right: 1px solid var(--border);
  padding: 16px;
  overflow-y: auto;
  position: sticky;
  top: 0;
  height: 100vh;
}
.sidebar .brand { font-weight: 600; margin-bottom: 12px; }
.sidebar .brand a { color: var(--text); text-decoration: none; }
.sidebar ul { list-style: none; padding-left: 12px; margin: 4px 0; }
.sidebar a { color: var(--muted); text-decoration: none; display: block; padding: 2px 4px; border-radius: 4px; }
.sidebar a:hover { color: var(--accent); }
.sidebar a.active { color: var(--accent); font-weight: 600; }
.sidebar summary { cursor: pointer; color: var(--text); padding: 2px 0; }
#search-box {
  width: 100%;
  padding: 6px 8px;
  margin-bottom: 8px;
  border: 1px solid var(--border);
  border-radius: 6px;
}
#search-results a { padding: 4px; }
.content { flex: 1; max-width: 900px; padding: 32px 48px; }
.content table { border-collapse: collapse; width: 100%; margin: 12px 0; }
.content th, .content td { border: 1px solid var(--border); padding: 6px 12px; text-align: left; }
.content th { background: var(--sidebar-bg); }
.content code { background: var(--sidebar-bg); padding: 1px 4px; border-radius: 4px; font-size: 0.9em; }
.content pre { background: var(--sidebar-bg); padding: 12px; border-radius: 6px; overflow-x: auto; }
.content pre code { background: none; padding: 0; }
#display-examples {
  padding: 6px 14px;
  border: 1px solid var(--border);
  border-radius: 6px;
  background: var(--accent);
  color: #fff;
  cursor: pointer;
}
#display-examples:disabled { opacity: 0.6; cursor: wait; }
#examples-container { margin-top: 12px; overflow-x: auto; }
`

const jsContent = `(function () {
  var box = document.getElementById('search-box');
  var results = document.getElementById('search-results');
  if (!box) return;

  var index = null;
  fetch(window.basePath + 'search-index.json')
    .then(function (res) { return res.json(); })
    .then(function (data) { index = data; })
    .catch(function () { box.placeholder = 'Search unavailable'; box.disabled = true; });

  box.addEventListener('input', function () {
    var q = box.value.trim().toLowerCase();
    results.innerHTML = '';
    if (!q || !index) return;
    var matches = index.filter(function (e) {
      return e.title.toLowerCase().indexOf(q) !== -1 ||
             e.content.toLowerCase().indexOf(q) !== -1;
    }).slice(0, 10);
    var ul = document.createElement('ul');
    matches.forEach(function (e) {
      var li = document.createElement('li');
      var a = document.createElement('a');
      a.href = window.basePath + e.path;
      a.textContent = e.title;
      li.appendChild(a);
      ul.appendChild(li);
    });
    results.appendChild(ul);
  });
})();

// Live reload: when the site is served by datacat, subscribe to rebuild
// notifications. Does nothing for file:// or hosts without the endpoint.
(function () {
  if (location.protocol !== 'http:' && location.protocol !== 'https:') return;
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var ws;
  try {
    ws = new WebSocket(proto + location.host + '/ws/reload');
  } catch (e) {
    return;
  }
  ws.onmessage = function (msg) {
    if (msg.data === 'reload') location.reload();
  };
})();
`
