package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/placepulse/place-audit/internal/competitor"
	"github.com/placepulse/place-audit/internal/listing"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP audit API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initAudit(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newMux(env),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// auditRequest is the body shared by the analyze and competitors routes.
// Exactly one of Input (place ID or listing URL) and Name must be set.
type auditRequest struct {
	Input       string `json:"input"`
	Name        string `json:"name"`
	Competitors bool   `json:"competitors"`
	Save        bool   `json:"save"`
}

// newMux builds the HTTP routes. Split from serveCmd so tests can exercise
// the handlers directly.
func newMux(env *auditEnv) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /analyze", func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeAuditRequest(w, r)
		if !ok {
			return
		}

		report, err := env.buildReport(r.Context(), req.Input, req.Name, req.Competitors)
		if err != nil {
			writeAcquireError(w, err)
			return
		}

		if req.Save {
			if err := env.Store.SaveReport(r.Context(), report); err != nil {
				zap.L().Error("save report failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "save failed")
				return
			}
		}

		writeJSON(w, http.StatusOK, report)
	})

	mux.HandleFunc("POST /competitors", func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeAuditRequest(w, r)
		if !ok {
			return
		}

		acq, err := env.acquire(r.Context(), req.Input, req.Name)
		if err != nil {
			writeAcquireError(w, err)
			return
		}

		sub := competitor.SubjectFromRecord(acq.PlaceID, acq.Record, acq.SecondaryAddress)
		competitors, err := env.Discovery.Discover(r.Context(), sub)
		if err != nil {
			zap.L().Error("competitor discovery failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "discovery failed")
			return
		}

		writeJSON(w, http.StatusOK, competitorsOutput{
			PlaceID:     acq.PlaceID,
			Name:        acq.Record.Name,
			Competitors: competitors,
		})
	})

	return mux
}

func decodeAuditRequest(w http.ResponseWriter, r *http.Request) (auditRequest, bool) {
	var req auditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.Input == "" && req.Name == "" {
		writeError(w, http.StatusBadRequest, "input or name is required")
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeAcquireError maps the acquisition error taxonomy onto HTTP statuses:
// a listing that cannot be resolved is the caller's problem, everything
// else is ours.
func writeAcquireError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, listing.ErrNotFound), errors.Is(err, listing.ErrNoMatch):
		writeError(w, http.StatusNotFound, "place not found")
	default:
		zap.L().Error("acquisition failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "analysis failed")
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
