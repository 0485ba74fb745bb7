package profile

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"mappa/db"
	"mappa/models"
	"mappa/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const avatarDir = "static/userpic"

// GET /api/profile/:userid
func GetProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

// PUT /api/profile/avatar uploads a new avatar; the image is normalized to a
// 128px thumbnail, which is what presence cursors render.
func UploadAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		http.Error(w, "file error", http.StatusBadRequest)
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		http.Error(w, "invalid image", http.StatusBadRequest)
		return
	}
	thumb := imaging.Fill(img, 128, 128, imaging.Center, imaging.Lanczos)

	if err := utils.EnsureDir(avatarDir); err != nil {
		http.Error(w, "save error", http.StatusInternalServerError)
		return
	}
	fn := fmt.Sprintf("%s.jpg", userID)
	if err := imaging.Save(thumb, filepath.Join(avatarDir, fn)); err != nil {
		log.Println("avatar save:", err)
		http.Error(w, "save error", http.StatusInternalServerError)
		return
	}

	avatarURL := "/static/userpic/" + fn

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"avatar": avatarURL}},
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bson.M{"avatar": avatarURL})
}
