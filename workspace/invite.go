package workspace

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"mappa/db"
	"mappa/models"

	"github.com/julienschmidt/httprouter"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// GET /api/workspaces/:workspaceid/invite-qr returns a QR code PNG encoding
// the join link for this workspace.
func InviteQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	workspaceID := ps.ByName("workspaceid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var ws models.Workspace
	if err := db.WorkspacesCollection.FindOne(ctx, bson.M{"workspaceid": workspaceID}).Decode(&ws); err != nil {
		http.Error(w, "Workspace not found", http.StatusNotFound)
		return
	}

	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	joinURL := fmt.Sprintf("%s/join/%s", baseURL, ws.WorkspaceID)

	qrPNG, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(qrPNG)
}
