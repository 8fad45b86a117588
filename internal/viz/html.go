package viz

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/matsen/kgraph/internal/render"
)

// Templates are parsed at init time to fail fast on template errors.
var (
	snapshotTemplate *template.Template
	liveTemplate     *template.Template
)

func init() {
	snapshotTemplate = template.Must(template.New("snapshot").Parse(pageHead + snapshotBody))
	liveTemplate = template.Must(template.New("live").Parse(pageHead + liveBody))
}

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Title      string
	Background string
	Labels     bool // draw node labels
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Title:      "Knowledge Graph",
		Background: "#000000",
		Labels:     true,
	}
}

// snapshotData holds data for the snapshot template.
type snapshotData struct {
	Title      string
	Background string
	Width      string
	Height     string
	Renderer   render.Kind
	Labels     bool
	Links      []svgLink
	Nodes      []svgNode
}

// GenerateHTML renders one frame as a self-contained HTML page with an
// inline SVG. Nodes with a URL link to it.
func GenerateHTML(f *render.Frame, opts HTMLOptions) (string, error) {
	if f == nil {
		return "", fmt.Errorf("frame cannot be nil")
	}
	if len(f.Nodes) == 0 {
		return generateEmptyHTML(opts.Title), nil
	}

	links, nodes := toSVG(f)
	data := snapshotData{
		Title:      opts.Title,
		Background: opts.Background,
		Width:      num(f.Width),
		Height:     num(f.Height),
		Renderer:   f.Renderer,
		Labels:     opts.Labels,
		Links:      links,
		Nodes:      nodes,
	}

	var buf bytes.Buffer
	if err := snapshotTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// LiveOptions configures the live preview page.
type LiveOptions struct {
	HTMLOptions
	// SocketPath is the websocket endpoint, relative to the page.
	SocketPath string
	Renderer   render.Kind
	Controls   []Control
}

// liveData holds data for the live template.
type liveData struct {
	Title      string
	Background string
	Renderer   render.Kind
	Labels     bool
	SocketPath string
	Controls   []Control
}

// GenerateLiveHTML renders the page that draws frames streamed over a
// websocket and sends pointer events and control changes back.
func GenerateLiveHTML(opts LiveOptions) (string, error) {
	if opts.SocketPath == "" {
		return "", fmt.Errorf("socket path cannot be empty")
	}
	if _, err := render.ParseKind(string(opts.Renderer)); err != nil {
		return "", err
	}
	data := liveData{
		Title:      opts.Title,
		Background: opts.Background,
		Renderer:   opts.Renderer,
		Labels:     opts.Labels,
		SocketPath: opts.SocketPath,
		Controls:   opts.Controls,
	}

	var buf bytes.Buffer
	if err := liveTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// generateEmptyHTML returns HTML for a frame with nothing visible.
func generateEmptyHTML(title string) string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>` + template.HTMLEscapeString(title) + ` - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #000;
      color: #aaa;
    }
    .empty-state code {
      background: #222;
      padding: 2px 6px;
      border-radius: 3px;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No visible nodes</h2>
    <p>Every node is hidden by the current filters or the dataset is empty.</p>
    <p>Check the dataset with <code>kg dataset validate</code></p>
  </div>
</body>
</html>`
}

const pageHead = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    * {
      box-sizing: border-box;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: {{.Background}};
      color: #ddd;
      overflow: hidden;
    }
    svg {
      display: block;
    }
    svg text {
      font-size: 11px;
      fill: #ddd;
      pointer-events: none;
    }
    #panel {
      position: absolute;
      top: 8px;
      right: 8px;
      background: rgba(20,20,20,0.85);
      border: 1px solid #333;
      border-radius: 4px;
      padding: 8px 12px;
      font-size: 12px;
    }
    #panel label {
      display: block;
      margin: 4px 0;
    }
    #panel button {
      margin: 4px 4px 0 0;
    }
  </style>
</head>
`

const snapshotBody = `<body>
  <svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" data-renderer="{{.Renderer}}">
    <defs>
      <marker id="arrow" viewBox="0 -5 10 10" refX="15" refY="0" markerWidth="6" markerHeight="6" orient="auto">
        <path d="M0,-5L10,0L0,5" fill="#00ffff"></path>
      </marker>
    </defs>
    <g class="links">
      {{- range .Links}}
      <path d="{{.D}}" fill="none" stroke="{{.Color}}" stroke-width="{{.Width}}" stroke-opacity="{{.Opacity}}"{{if .Arrow}} marker-end="url(#arrow)"{{end}}></path>
      {{- end}}
    </g>
    <g class="nodes">
      {{- range .Nodes}}
      {{- if .URL}}
      <a href="{{.URL}}" target="_blank">
        <circle id="{{.ID}}" cx="{{.CX}}" cy="{{.CY}}" r="{{.R}}" fill="{{.Fill}}"{{if .Stroke}} stroke="{{.Stroke}}"{{end}} opacity="{{.Opacity}}"><title>{{.Label}}</title></circle>
      </a>
      {{- else}}
      <circle id="{{.ID}}" cx="{{.CX}}" cy="{{.CY}}" r="{{.R}}" fill="{{.Fill}}"{{if .Stroke}} stroke="{{.Stroke}}"{{end}} opacity="{{.Opacity}}"><title>{{.Label}}</title></circle>
      {{- end}}
      {{- end}}
    </g>
    {{- if .Labels}}
    <g class="labels">
      {{- range .Nodes}}
      <text x="{{.LX}}" y="{{.LY}}" opacity="{{.Opacity}}">{{.Label}}</text>
      {{- end}}
    </g>
    {{- end}}
  </svg>
</body>
</html>`

const liveBody = `<body>
  <svg id="view" xmlns="http://www.w3.org/2000/svg" data-renderer="{{.Renderer}}">
    <defs>
      <marker id="arrow" viewBox="0 -5 10 10" refX="15" refY="0" markerWidth="6" markerHeight="6" orient="auto">
        <path d="M0,-5L10,0L0,5" fill="#00ffff"></path>
      </marker>
    </defs>
    <g id="links"></g>
    <g id="nodes"></g>
    <g id="labels"></g>
  </svg>
  <div id="panel">
    {{- range .Controls}}
    {{- if eq .Kind "toggle"}}
    <label><input type="checkbox" data-param="{{.Param}}"{{if .Value}} checked{{end}}> {{.Label}}</label>
    {{- else if eq .Kind "range"}}
    <label>{{.Label}} <input type="range" data-param="{{.Param}}" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Value}}"></label>
    {{- else}}
    <button data-param="{{.Param}}">{{.Label}}</button>
    {{- end}}
    {{- end}}
  </div>
  <script>
    (function() {
      const socketPath = {{.SocketPath}};
      const showLabels = {{.Labels}};
      const NS = 'http://www.w3.org/2000/svg';
      const svg = document.getElementById('view');
      const gLinks = document.getElementById('links');
      const gNodes = document.getElementById('nodes');
      const gLabels = document.getElementById('labels');

      const proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
      const ws = new WebSocket(proto + '//' + location.host + socketPath);

      function send(msg) {
        if (ws.readyState === WebSocket.OPEN) {
          ws.send(JSON.stringify(msg));
        }
      }

      function resize() {
        svg.setAttribute('width', window.innerWidth);
        svg.setAttribute('height', window.innerHeight);
        send({type: 'resize', width: window.innerWidth, height: window.innerHeight});
      }

      function el(name, attrs) {
        const e = document.createElementNS(NS, name);
        for (const k in attrs) {
          if (attrs[k] !== undefined && attrs[k] !== '') e.setAttribute(k, attrs[k]);
        }
        return e;
      }

      function draw(f) {
        gLinks.replaceChildren();
        gNodes.replaceChildren();
        gLabels.replaceChildren();
        for (const l of f.links || []) {
          if (l.opacity <= 0) continue;
          const d = l.points.map((p, i) => (i ? 'L' : 'M') + p.X + ' ' + p.Y).join(' ');
          gLinks.appendChild(el('path', {
            d: d, fill: 'none', stroke: l.color, 'stroke-width': l.width,
            'stroke-opacity': l.opacity, 'marker-end': l.arrow ? 'url(#arrow)' : ''
          }));
        }
        for (const n of f.nodes || []) {
          if (n.opacity <= 0) continue;
          const c = el('circle', {cx: n.x, cy: n.y, r: n.r, fill: n.color, stroke: n.stroke, opacity: n.opacity});
          if (n.emphasis === 'focus') c.setAttribute('stroke-width', 2);
          gNodes.appendChild(c);
          if (showLabels) {
            const t = el('text', {x: n.lx, y: n.ly, opacity: n.opacity});
            t.textContent = n.label;
            gLabels.appendChild(t);
          }
        }
        svg.style.cursor = f.hover ? 'pointer' : 'default';
      }

      ws.onopen = resize;
      ws.onmessage = function(evt) {
        const msg = JSON.parse(evt.data);
        if (msg.type === 'frame') {
          draw(msg.frame);
        } else if (msg.type === 'navigate') {
          window.open(msg.url, '_blank');
        }
      };

      function pointer(type, e) {
        const r = svg.getBoundingClientRect();
        send({type: type, button: e.button, x: e.clientX - r.left, y: e.clientY - r.top, shift: e.shiftKey});
      }
      svg.addEventListener('mousedown', e => pointer('down', e));
      svg.addEventListener('mousemove', e => pointer('move', e));
      svg.addEventListener('mouseup', e => pointer('up', e));
      svg.addEventListener('mouseleave', e => pointer('leave', e));
      svg.addEventListener('contextmenu', e => e.preventDefault());
      svg.addEventListener('wheel', function(e) {
        e.preventDefault();
        const r = svg.getBoundingClientRect();
        send({type: 'wheel', x: e.clientX - r.left, y: e.clientY - r.top, deltaY: e.deltaY});
      }, {passive: false});
      window.addEventListener('resize', resize);

      for (const input of document.querySelectorAll('#panel [data-param]')) {
        const param = input.dataset.param;
        if (input.tagName === 'BUTTON') {
          input.addEventListener('click', () => send({type: 'control', param: param, value: 1}));
        } else if (input.type === 'checkbox') {
          input.addEventListener('change', () => send({type: 'control', param: param, value: input.checked ? 1 : 0}));
        } else {
          input.addEventListener('input', () => send({type: 'control', param: param, value: parseFloat(input.value)}));
        }
      }
    })();
  </script>
</body>
</html>`
