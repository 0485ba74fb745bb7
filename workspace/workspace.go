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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// POST /api/workspaces
func CreateWorkspace(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var ws models.Workspace
	if err := json.NewDecoder(r.Body).Decode(&ws); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ws.WorkspaceID = "w" + utils.GenerateRandomString(13)
	ws.CreatedBy = userID
	ws.Members = []string{userID}
	ws.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.WorkspacesCollection.InsertOne(ctx, ws); err != nil {
		http.Error(w, "Error creating workspace", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ws)
}

// GET /api/workspaces/:workspaceid
func GetWorkspace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	workspaceID := ps.ByName("workspaceid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var ws models.Workspace
	err := db.WorkspacesCollection.FindOne(ctx, bson.M{"workspaceid": workspaceID}).Decode(&ws)
	if err != nil {
		http.Error(w, "Workspace not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ws)
}

// POST /api/workspaces/:workspaceid/join adds the requesting user as a member.
func JoinWorkspace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	workspaceID := ps.ByName("workspaceid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.WorkspacesCollection.UpdateOne(ctx,
		bson.M{"workspaceid": workspaceID},
		bson.M{"$addToSet": bson.M{"members": userID}},
	)
	if err != nil {
		http.Error(w, "Error joining workspace", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Workspace not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Joined workspace"})
}

// POST /api/workspaces/:workspaceid/days
func AddPlanDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var day models.PlanDay
	if err := json.NewDecoder(r.Body).Decode(&day); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	day.PlanDayID = "d" + utils.GenerateRandomString(13)
	day.WorkspaceID = ps.ByName("workspaceid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.PlanDaysCollection.InsertOne(ctx, day); err != nil {
		http.Error(w, "Error adding plan day", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(day)
}

// GET /api/workspaces/:workspaceid/days
func GetPlanDays(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	workspaceID := ps.ByName("workspaceid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "day_index", Value: 1}})
	cur, err := db.PlanDaysCollection.Find(ctx, bson.M{"workspaceid": workspaceID}, opts)
	if err != nil {
		http.Error(w, "Error fetching plan days", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	days := []models.PlanDay{}
	if err := cur.All(ctx, &days); err != nil {
		http.Error(w, "Error decoding plan days", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, days)
}
