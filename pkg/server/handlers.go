package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fabricware/fusiongen/pkg/bordernode"
	"github.com/fabricware/fusiongen/pkg/errors"
	"github.com/fabricware/fusiongen/pkg/fusion"
	"github.com/fabricware/fusiongen/pkg/ioscfg"
	"github.com/fabricware/fusiongen/pkg/store"
)

// handleUpload parses uploaded border node running configurations and returns
// the extracted facts. A single unparsable file fails the whole request so
// the caller never works from a silently incomplete set.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest,
			errors.New(errors.ErrCodeRequestInvalid,
				"Upload is not a valid multipart form or exceeds the size limit",
				err.Error(), "Send the configurations as multipart 'config_files' parts"))
		return
	}

	files := r.MultipartForm.File["config_files"]
	if len(files) == 0 {
		s.writeError(w, http.StatusBadRequest,
			errors.New(errors.ErrCodeRequestInvalid,
				"No configuration files in upload",
				"The multipart form has no 'config_files' parts",
				"Attach at least one border node configuration file"))
		return
	}

	resp := UploadResponse{BorderNodes: make([]*bordernode.Model, 0, len(files))}
	for _, fh := range files {
		if !s.cfg.ExtensionAllowed(fh.Filename) {
			s.writeError(w, http.StatusBadRequest,
				errors.New(errors.ErrCodeRequestInvalid,
					fmt.Sprintf("File type not allowed: %s", fh.Filename),
					"Only plain-text configuration exports are accepted",
					fmt.Sprintf("Use one of the allowed extensions: %v", s.cfg.AllowedExtensions)))
			return
		}

		f, err := fh.Open()
		if err != nil {
			s.writeError(w, http.StatusBadRequest, errors.Wrap(err,
				errors.ErrCodeRequestInvalid,
				fmt.Sprintf("Could not read uploaded file: %s", fh.Filename),
				"The multipart part could not be opened", "Retry the upload"))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			s.writeError(w, http.StatusBadRequest, errors.Wrap(err,
				errors.ErrCodeRequestInvalid,
				fmt.Sprintf("Could not read uploaded file: %s", fh.Filename),
				"The multipart part could not be read", "Retry the upload"))
			return
		}

		model, err := bordernode.Parse(string(data))
		if err != nil {
			s.log.Error("Border node parse failed", "error", err, "filename", fh.Filename)
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		resp.BorderNodes = append(resp.BorderNodes, model)
	}

	s.log.Info("Border node configurations parsed", "count", len(resp.BorderNodes))
	writeJSON(w, http.StatusOK, resp)
}

// handleGenerate runs the full synthesis pipeline: shared iBGP and OSPF
// derivation once, then per-router synthesis and rendering. Results are
// persisted to the history store and the artifact workdir.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest,
			errors.New(errors.ErrCodeRequestInvalid,
				"Request body is not valid JSON", err.Error(),
				"Send a JSON generation request"))
		return
	}

	if len(req.FusionRouters) == 0 || len(req.BorderNodes) == 0 || len(req.Handoffs) == 0 {
		s.writeError(w, http.StatusBadRequest,
			errors.New(errors.ErrCodeRequestInvalid,
				"Missing required sections in generation request",
				"fusion_routers, border_nodes, and handoffs must all be non-empty",
				"Upload border node configs and define at least one handoff"))
		return
	}

	ibgpConfigs, err := fusion.BuildIBGPConfigs(req.FusionRouters, req.IBGP)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	ospfConfigs, err := fusion.BuildOSPFConfigs(req.FusionRouters, req.OSPF)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	requestID := uuid.New().String()
	configs := make(map[string]string, len(req.FusionRouters))

	for _, params := range req.FusionRouters {
		model, err := fusion.Synthesize(params, req.BorderNodes, req.Handoffs,
			req.VRFConfigs, ibgpConfigs[params.RouterID], ospfConfigs[params.RouterID])
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}

		text, err := ioscfg.Generate(model)
		if err != nil {
			s.log.Error("Config generation failed", "error", err, "hostname", params.Hostname)
			s.writeError(w, http.StatusInternalServerError, errors.Wrap(err,
				errors.ErrCodeValidation,
				fmt.Sprintf("Config generation failed for router %s", params.Hostname),
				"The synthesized model could not be rendered",
				"Check the handoff and router parameters for this router"))
			return
		}
		configs[params.Hostname] = text

		gen := &store.Generation{
			RequestID:      requestID,
			RouterHostname: params.Hostname,
			InterfaceMode:  string(model.InterfaceMode),
			ConfigText:     text,
		}
		if err := s.store.SaveGeneration(r.Context(), gen); err != nil {
			s.log.Error("Failed to persist generation", "error", err, "hostname", params.Hostname)
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		if _, err := s.workdir.WriteArtifact(params.Hostname, text); err != nil {
			// The config is already persisted in the history; an artifact
			// write failure is logged but does not fail the request.
			s.log.Error("Failed to write artifact", "error", err, "hostname", params.Hostname)
		}
	}

	s.log.Info("Configurations generated",
		"request_id", requestID,
		"routers", len(req.FusionRouters),
	)
	writeJSON(w, http.StatusOK, GenerateResponse{
		GenerationID: requestID,
		Configs:      configs,
	})
}

// handleDownload returns one configuration as a plain-text attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var req DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest,
			errors.New(errors.ErrCodeRequestInvalid,
				"Request body is not valid JSON", err.Error(),
				"Send a JSON download request"))
		return
	}
	filename := req.Filename
	if filename == "" {
		filename = "fusion-router-config.txt"
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, req.Config)
}

// handleListGenerations returns the newest history entries without bodies.
func (s *Server) handleListGenerations(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest,
				errors.New(errors.ErrCodeRequestInvalid,
					fmt.Sprintf("Invalid limit: %s", v),
					"limit must be a positive integer", "Pass limit as a number"))
			return
		}
		limit = n
	}

	generations, err := s.store.ListGenerations(r.Context(), limit)
	if err != nil {
		s.log.Error("Failed to list generations", "error", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := GenerationListResponse{Generations: make([]*GenerationSummary, 0, len(generations))}
	for _, g := range generations {
		resp.Generations = append(resp.Generations, &GenerationSummary{
			ID:             g.ID,
			RequestID:      g.RequestID,
			RouterHostname: g.RouterHostname,
			InterfaceMode:  g.InterfaceMode,
			CreatedAt:      g.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetGeneration returns one full history record including the config.
func (s *Server) handleGetGeneration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	gen, err := s.store.GetGeneration(r.Context(), id)
	if err != nil {
		s.log.Error("Failed to load generation", "error", err, "id", id)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if gen == nil {
		s.writeError(w, http.StatusNotFound,
			errors.New(errors.ErrCodeRequestInvalid,
				fmt.Sprintf("Generation not found: %s", id),
				"No history record has this id", "List /api/generations for valid ids"))
		return
	}
	writeJSON(w, http.StatusOK, gen)
}
