package server

import (
	"net/http"

	"github.com/matzehuels/bstviz/pkg/httputil"
	"github.com/matzehuels/bstviz/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatYAML: "application/yaml",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

type renderResponse struct {
	TreeHash  string            `json:"tree_hash"`
	Values    []string          `json:"values"`
	Dropped   int               `json:"dropped"`
	Nodes     int               `json:"nodes"`
	Depth     int               `json:"depth"`
	Cached    bool              `json:"cached"`
	Artifacts map[string][]byte `json:"artifacts"`
}

// handleRender runs the pipeline. A single requested format is written raw
// with its content type; several are returned base64-encoded in JSON.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := httputil.DecodeJSON(r, &opts); err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	if opts.Width == 0 {
		opts.Width = s.cfg.Width
	}
	if opts.Height == 0 {
		opts.Height = s.cfg.Height
	}
	if opts.Radius == 0 {
		opts.Radius = s.cfg.Radius
	}
	opts.Logger = s.logger

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}

	if len(res.Artifacts) == 1 {
		for format, data := range res.Artifacts {
			w.Header().Set("Content-Type", contentTypes[format])
			w.Header().Set("X-Tree-Hash", res.TreeHash)
			_, _ = w.Write(data)
		}
		return
	}

	values := make([]string, len(res.Values))
	for i, v := range res.Values {
		values[i] = v.String()
	}
	httputil.WriteJSON(w, http.StatusOK, renderResponse{
		TreeHash:  res.TreeHash,
		Values:    values,
		Dropped:   res.Dropped,
		Nodes:     res.Stats.NodeCount,
		Depth:     res.Stats.Depth,
		Cached:    res.CacheInfo.RenderHit,
		Artifacts: res.Artifacts,
	})
}
