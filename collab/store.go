package collab

import (
	"context"
	"time"

	"mappa/db"
	"mappa/models"
	"mappa/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dbTimeout = 5 * time.Second

func dbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// Snapshot returns every marked and scheduled poi of a workspace, ordered by
// sequence. Recommendations are served over REST, not in the room snapshot.
func Snapshot(workspaceID string) ([]models.Poi, error) {
	ctx, cancel := dbCtx()
	defer cancel()

	filter := bson.M{
		"workspaceid": workspaceID,
		"status":      bson.M{"$ne": models.StatusRecommended},
	}
	opts := options.Find().SetSort(bson.D{{Key: "plandayid", Value: 1}, {Key: "sequence", Value: 1}})

	cur, err := db.PoisCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	pois := []models.Poi{}
	if err := cur.All(ctx, &pois); err != nil {
		return nil, err
	}
	return pois, nil
}

// CreatePoi persists a freshly marked poi under a permanent server id.
func CreatePoi(workspaceID, userID string, desc models.Poi) (models.Poi, error) {
	ctx, cancel := dbCtx()
	defer cancel()

	n, err := db.PoisCollection.CountDocuments(ctx, bson.M{
		"workspaceid": workspaceID,
		"status":      models.StatusMarked,
	})
	if err != nil {
		return models.Poi{}, err
	}

	poi := models.Poi{
		PoiID:        "poi" + utils.GenerateRandomString(13),
		WorkspaceID:  workspaceID,
		CreatedBy:    userID,
		Latitude:     desc.Latitude,
		Longitude:    desc.Longitude,
		Address:      desc.Address,
		PlaceName:    desc.PlaceName,
		CategoryName: desc.CategoryName,
		Status:       models.StatusMarked,
		Sequence:     int(n),
	}

	if _, err := db.PoisCollection.InsertOne(ctx, poi); err != nil {
		return models.Poi{}, err
	}
	return poi, nil
}

// DeletePoi removes a poi. Deleting an id that is already gone is fine.
func DeletePoi(workspaceID, poiID string) error {
	ctx, cancel := dbCtx()
	defer cancel()

	_, err := db.PoisCollection.DeleteOne(ctx, bson.M{
		"workspaceid": workspaceID,
		"poiid":       poiID,
	})
	return err
}

// SetSchedule assigns a poi to a plan day, appended at the end. Re-applying
// the same assignment leaves the record untouched.
func SetSchedule(workspaceID, poiID, planDayID string) error {
	return retag(workspaceID, poiID, models.StatusScheduled, planDayID)
}

// ClearSchedule puts a poi back into the unassigned pool.
func ClearSchedule(workspaceID, poiID string) error {
	return retag(workspaceID, poiID, models.StatusMarked, "")
}

func retag(workspaceID, poiID string, status models.PoiStatus, planDayID string) error {
	ctx, cancel := dbCtx()
	defer cancel()

	var poi models.Poi
	err := db.PoisCollection.FindOne(ctx, bson.M{
		"workspaceid": workspaceID,
		"poiid":       poiID,
	}).Decode(&poi)
	if err != nil {
		return err
	}
	if poi.Status == status && poi.PlanDayID == planDayID {
		return nil // duplicate delivery
	}

	n, err := db.PoisCollection.CountDocuments(ctx, bson.M{
		"workspaceid": workspaceID,
		"status":      status,
		"plandayid":   planDayID,
	})
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"status":    status,
		"plandayid": planDayID,
		"sequence":  n,
	}}
	_, err = db.PoisCollection.UpdateOne(ctx, bson.M{
		"workspaceid": workspaceID,
		"poiid":       poiID,
	}, update)
	return err
}

// Reorder replaces the sequence of a whole container with the submitted list
// order. Ids outside the container are skipped by the filter itself.
func Reorder(workspaceID, planDayID string, orderedIDs []string) error {
	status := models.StatusMarked
	if planDayID != "" {
		status = models.StatusScheduled
	}

	writes := make([]mongo.WriteModel, 0, len(orderedIDs))
	for i, id := range orderedIDs {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{
				"workspaceid": workspaceID,
				"poiid":       id,
				"status":      status,
				"plandayid":   planDayID,
			}).
			SetUpdate(bson.M{"$set": bson.M{"sequence": i}}))
	}
	if len(writes) == 0 {
		return nil
	}

	ctx, cancel := dbCtx()
	defer cancel()
	_, err := db.PoisCollection.BulkWrite(ctx, writes)
	return err
}
