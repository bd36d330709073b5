package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/core/input"
	"github.com/matzehuels/bstviz/pkg/core/step"
	"github.com/matzehuels/bstviz/pkg/errors"
	"github.com/matzehuels/bstviz/pkg/graph"
	"github.com/matzehuels/bstviz/pkg/httputil"
	"github.com/matzehuels/bstviz/pkg/pipeline"
	"github.com/matzehuels/bstviz/pkg/render/nodelink"
	"github.com/matzehuels/bstviz/pkg/render/svg"
	"github.com/matzehuels/bstviz/pkg/session"
)

type createSessionRequest struct {
	Category string   `json:"category"`
	Input    string   `json:"input,omitempty"`
	Values   []string `json:"values,omitempty"`
	Random   bool     `json:"random,omitempty"`
	Seed     uint64   `json:"seed,omitempty"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	Radius   float64  `json:"radius,omitempty"`
}

type addValuesRequest struct {
	Input  string   `json:"input,omitempty"`
	Values []string `json:"values,omitempty"`
}

type boundsRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type sessionView struct {
	ID       string       `json:"id"`
	Category string       `json:"category"`
	Values   []string     `json:"values"`
	Index    int          `json:"index"`
	Done     bool         `json:"done"`
	Cursor   string       `json:"cursor,omitempty"`
	Layout   graph.Layout `json:"layout"`
}

type eventView struct {
	Kind      step.Kind `json:"kind"`
	Value     string    `json:"value,omitempty"`
	Node      string    `json:"node,omitempty"`
	Parent    string    `json:"parent,omitempty"`
	Index     int       `json:"index"`
	Message   string    `json:"message"`
	Case      string    `json:"case,omitempty"`
	Successor string    `json:"successor,omitempty"`
}

type stepResponse struct {
	Event   eventView   `json:"event"`
	Session sessionView `json:"session"`
}

type finishResponse struct {
	Events  []eventView `json:"events"`
	Session sessionView `json:"session"`
}

type createResponse struct {
	Session sessionView `json:"session"`
	Dropped int         `json:"dropped"`
	Status  string      `json:"status"`
}

type addValuesResponse struct {
	Added   int         `json:"added"`
	Dropped int         `json:"dropped"`
	Status  string      `json:"status"`
	Session sessionView `json:"session"`
}

type traversalResponse struct {
	Order  string   `json:"order"`
	Values []string `json:"values"`
}

func nodeKey(n *bst.Node) string {
	if n == nil {
		return ""
	}
	return n.Value.Key()
}

func viewEvent(e step.Event) eventView {
	v := eventView{
		Kind:    e.Kind,
		Node:    nodeKey(e.Node),
		Parent:  nodeKey(e.Parent),
		Index:   e.Index,
		Message: e.Message,
	}
	if e.Kind != step.Done {
		v.Value = e.Value.String()
	}
	if e.Delete != nil {
		v.Case = e.Delete.Case.String()
		v.Successor = nodeKey(e.Delete.Successor)
	}
	return v
}

// view snapshots the session. The caller must hold the session via Do.
func view(sess *session.Session, st *step.Stepper) sessionView {
	b := st.Bounds()
	values := make([]string, len(st.Values()))
	for i, v := range st.Values() {
		values[i] = v.String()
	}
	return sessionView{
		ID:       sess.ID,
		Category: st.Category().String(),
		Values:   values,
		Index:    st.Index(),
		Done:     st.Done(),
		Cursor:   nodeKey(st.Cursor()),
		Layout:   graph.FromTree(st.Tree(), b.Width, b.Height, sess.Radius()),
	}
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) snapshot(sess *session.Session) sessionView {
	var v sessionView
	_ = sess.Do(func(st *step.Stepper) error {
		v = view(sess, st)
		return nil
	})
	return v
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}

	opts := pipeline.Options{
		Category: req.Category,
		Input:    req.Input,
		Values:   req.Values,
		Random:   req.Random,
		Seed:     req.Seed,
		Width:    firstNonZero(req.Width, s.cfg.Width),
		Height:   firstNonZero(req.Height, s.cfg.Height),
		Radius:   firstNonZero(req.Radius, s.cfg.Radius),
	}
	if err := opts.ValidateForBuild(); err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	if err := opts.ValidateForLayout(); err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	values, dropped, err := pipeline.Values(opts)
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	c, _ := bst.ParseCategory(opts.Category)

	sess, err := s.store.Create(r.Context(), c, values, opts.Bounds(), opts.Radius)
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	s.logger.Info("session created", "id", sess.ID, "category", c, "values", len(values), "dropped", dropped)

	httputil.WriteJSON(w, http.StatusCreated, createResponse{
		Session: s.snapshot(sess),
		Dropped: dropped,
		Status:  input.Result{Dropped: dropped}.Status(),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, s.snapshot(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	ev := sess.Step(r.Context())
	httputil.WriteJSON(w, http.StatusOK, stepResponse{Event: viewEvent(ev), Session: s.snapshot(sess)})
}

func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	events := sess.Finish(r.Context())
	views := make([]eventView, len(events))
	for i, e := range events {
		views[i] = viewEvent(e)
	}
	httputil.WriteJSON(w, http.StatusOK, finishResponse{Events: views, Session: s.snapshot(sess)})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var v sessionView
	_ = sess.Do(func(st *step.Stepper) error {
		st.Reset()
		v = view(sess, st)
		return nil
	})
	httputil.WriteJSON(w, http.StatusOK, v)
}

// handleBounds re-lays-out the session for a new drawing rectangle. Radius,
// margin and gap chosen at creation are kept.
func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req boundsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	if err := errors.ValidateDimensions(req.Width, req.Height, sess.Radius()); err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}

	var v sessionView
	_ = sess.Do(func(st *step.Stepper) error {
		b := st.Bounds()
		b.Width, b.Height = req.Width, req.Height
		st.Resize(b)
		v = view(sess, st)
		return nil
	})
	s.logger.Debug("session resized", "id", sess.ID, "width", req.Width, "height", req.Height)
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (s *Server) handleAddValues(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req addValuesRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}

	var resp addValuesResponse
	err := sess.Do(func(st *step.Stepper) error {
		var res input.Result
		if len(req.Values) > 0 {
			res = input.ParseTokens(st.Category(), req.Values)
		} else {
			if err := errors.ValidateInput(req.Input); err != nil {
				return err
			}
			res = input.Parse(st.Category(), req.Input)
		}
		if len(st.Values())+len(res.Values) > errors.MaxValues {
			return errors.New(errors.ErrCodeInvalidInput, "too many values (max %d)", errors.MaxValues)
		}
		resp.Added = st.Add(res.Values...)
		resp.Dropped = res.Dropped + len(res.Values) - resp.Added
		resp.Status = input.Result{Dropped: resp.Dropped}.Status()
		resp.Session = view(sess, st)
		return nil
	})
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteValue(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	raw, err := url.PathUnescape(chi.URLParam(r, "value"))
	if err != nil {
		httputil.WriteError(w, s.logger, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed value"))
		return
	}
	v, err := sess.Category().Parse(raw)
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}

	ev, err := sess.Delete(r.Context(), v)
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stepResponse{Event: viewEvent(ev), Session: s.snapshot(sess)})
}

func (s *Server) handleTraversal(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	order, err := bst.ParseOrder(chi.URLParam(r, "order"))
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	var values []string
	_ = sess.Do(func(st *step.Stepper) error {
		values = st.Tree().Strings(order)
		return nil
	})
	if values == nil {
		values = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, traversalResponse{Order: order.String(), Values: values})
}

func (s *Server) handleSessionSVG(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()

	styleName := q.Get("style")
	if styleName == "" {
		styleName = pipeline.DefaultStyle
	}
	if err := pipeline.ValidateStyle(styleName); err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	svgOpts := []svg.Option{}
	if o := q.Get("order"); o != "" {
		order, err := bst.ParseOrder(o)
		if err != nil {
			httputil.WriteError(w, s.logger, err)
			return
		}
		svgOpts = append(svgOpts, svg.WithTraversal(order))
	}
	if crop, _ := strconv.ParseBool(q.Get("crop")); crop {
		svgOpts = append(svgOpts, svg.WithCrop())
	}

	var (
		data []byte
		dot  string
	)
	_ = sess.Do(func(st *step.Stepper) error {
		cursor := nodeKey(st.Cursor())
		if styleName == graph.StyleGraphviz {
			dot = nodelink.ToDOT(st.Tree(), nodelink.Options{Highlight: nonEmpty(cursor)})
			return nil
		}
		style, _ := svg.StyleFor(styleName)
		opts := append(svgOpts, svg.WithStyle(style), svg.WithHighlight(nonEmpty(cursor)...))
		data = svg.Render(view(sess, st).Layout, opts...)
		return nil
	})

	if dot != "" {
		var err error
		if data, err = nodelink.RenderSVG(r.Context(), dot); err != nil {
			httputil.WriteError(w, s.logger, errors.Wrap(errors.ErrCodeInternal, err, "graphviz render"))
			return
		}
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(data)
}

func firstNonZero(v, fallback float64) float64 {
	if v != 0 {
		return v
	}
	return fallback
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
