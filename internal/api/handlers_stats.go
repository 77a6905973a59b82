package api

import "net/http"

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"llm":         s.stats.Snapshot(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
