package workspace

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mappa/db"
	"mappa/models"
	"mappa/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Recommended pois arrive out-of-band (the recommendation feature posts them
// here) and are read-only: clients adopt them by cloning, never by mutating
// the record.

// GET /api/workspaces/:workspaceid/suggestions
func GetSuggestions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	workspaceID := ps.ByName("workspaceid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.PoisCollection.Find(ctx, bson.M{
		"workspaceid": workspaceID,
		"status":      models.StatusRecommended,
	})
	if err != nil {
		http.Error(w, "Error fetching suggestions", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	pois := []models.Poi{}
	if err := cur.All(ctx, &pois); err != nil {
		http.Error(w, "Error decoding suggestions", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, pois)
}

// POST /api/workspaces/:workspaceid/suggestions
func AddSuggestion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var poi models.Poi
	if err := json.NewDecoder(r.Body).Decode(&poi); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	poi.PoiID = "rec" + utils.GenerateRandomString(13)
	poi.WorkspaceID = ps.ByName("workspaceid")
	poi.CreatedBy = userID
	poi.Status = models.StatusRecommended
	poi.PlanDayID = ""
	poi.Sequence = 0

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.PoisCollection.InsertOne(ctx, poi); err != nil {
		http.Error(w, "Error storing suggestion", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(poi)
}
