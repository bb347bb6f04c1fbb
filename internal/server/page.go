package server

import (
	"html/template"
	"net/http"
)

// viewerData feeds the viewer page template.
type viewerData struct {
	Width  float64
	Height float64
}

// viewerPage is the interactive viewer. The graph widget (react-flow-renderer,
// loaded from a CDN) consumes the element lists served by the JSON API; the
// page itself only wires pickers and the upload form to API calls.
var viewerPage = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Knowledge Circuit Viewer</title>
<script src="https://unpkg.com/react@17/umd/react.production.min.js"></script>
<script src="https://unpkg.com/react-dom@17/umd/react-dom.production.min.js"></script>
<script src="https://unpkg.com/react-flow-renderer@9.7.4/dist/ReactFlow.js"></script>
<style>
  body { font-family: sans-serif; margin: 0; display: flex; }
  #sidebar { width: 260px; padding: 16px; border-right: 1px solid #ddd; }
  #sidebar h1 { font-size: 18px; }
  #sidebar label { display: block; margin-top: 12px; font-size: 13px; color: #444; }
  #sidebar select, #sidebar input { width: 100%; margin-top: 4px; }
  #stats { margin-top: 16px; font-size: 12px; color: #888; }
  #flow { width: {{.Width}}px; height: {{.Height}}px; }
  #error { color: #b00; font-size: 13px; margin-top: 12px; }
</style>
</head>
<body>
<div id="sidebar">
  <h1>Knowledge Circuit</h1>
  <label for="model">Model</label>
  <select id="model"></select>
  <label for="case">Case</label>
  <select id="case"></select>
  <label for="upload">Or upload a .gv file</label>
  <input type="file" id="upload" accept=".gv">
  <div id="stats"></div>
  <div id="error"></div>
</div>
<div id="flow"></div>
<script>
const width = {{.Width}};
const height = {{.Height}};
const modelSel = document.getElementById('model');
const caseSel = document.getElementById('case');
const errBox = document.getElementById('error');
const statsBox = document.getElementById('stats');

async function getJSON(url) {
  const res = await fetch(url);
  const body = await res.json();
  if (!res.ok) throw new Error(body.error ? body.error.message : res.statusText);
  return body;
}

function render(elements) {
  const flow = React.createElement(ReactFlow.default, {
    elements: elements,
    style: { width: width + 'px', height: height + 'px' },
  });
  ReactDOM.render(flow, document.getElementById('flow'));
}

function showStats(stats) {
  statsBox.textContent = stats.nodes + ' nodes · ' + stats.edges + ' edges · ' + stats.layers + ' layers';
}

function fail(err) { errBox.textContent = err.message; }
function clearError() { errBox.textContent = ''; }

async function loadCase() {
  clearError();
  if (!modelSel.value || !caseSel.value) return;
  try {
    const url = '/api/models/' + encodeURIComponent(modelSel.value) +
      '/cases/' + encodeURIComponent(caseSel.value) +
      '/elements?width=' + width + '&height=' + height;
    const body = await getJSON(url);
    showStats(body.stats);
    render(body.elements);
  } catch (err) { fail(err); }
}

async function loadCases() {
  clearError();
  caseSel.innerHTML = '';
  if (!modelSel.value) return;
  try {
    const body = await getJSON('/api/models/' + encodeURIComponent(modelSel.value) + '/cases');
    for (const c of body.cases) {
      caseSel.add(new Option(c.name, c.name));
    }
    await loadCase();
  } catch (err) { fail(err); }
}

async function loadModels() {
  try {
    const body = await getJSON('/api/models');
    for (const m of body.models) {
      modelSel.add(new Option(m, m));
    }
    await loadCases();
  } catch (err) { fail(err); }
}

document.getElementById('upload').addEventListener('change', async (ev) => {
  clearError();
  const file = ev.target.files[0];
  if (!file) return;
  try {
    const form = new FormData();
    form.append('file', file);
    const res = await fetch('/api/uploads', { method: 'POST', body: form });
    const body = await res.json();
    if (!res.ok) throw new Error(body.error ? body.error.message : res.statusText);
    const elems = await getJSON('/api/uploads/' + body.id + '/elements?width=' + width + '&height=' + height);
    showStats(elems.stats);
    render(elems.elements);
  } catch (err) { fail(err); }
});

modelSel.addEventListener('change', loadCases);
caseSel.addEventListener('change', loadCase);
loadModels();
</script>
</body>
</html>
`))

// handlePage serves the viewer page with the configured default dimensions.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := viewerData{Width: s.layoutWidth, Height: s.layoutHeight}
	if err := viewerPage.Execute(w, data); err != nil {
		s.logger.Error("render viewer page", "err", err)
	}
}
