package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"mindhaven/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// nonTerminalStatuses are the statuses that keep a date blocked on the
// calendar. "scheduled" is included for documents written before the status
// vocabulary was collapsed.
var nonTerminalStatuses = []string{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusScheduled,
}

// List returns sessions matching the filter, ordered by scheduled time.
func (r *MongoSessionRepo) List(ctx context.Context, filter models.SessionFilter) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.PatientID != "" {
		query["patientId"] = filter.PatientID
	}
	if filter.TherapistID != "" {
		query["therapistId"] = filter.TherapistID
	}
	if filter.Status != "" {
		status := models.NormalizeStatus(filter.Status)
		if status == models.StatusConfirmed {
			query["status"] = bson.M{"$in": []string{models.StatusConfirmed, models.StatusScheduled}}
		} else {
			query["status"] = status
		}
	}
	if timeQuery, err := scheduledAtRange(filter.From, filter.To); err != nil {
		return nil, err
	} else if len(timeQuery) > 0 {
		query["scheduledAt"] = timeQuery
	}

	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions: %w", err)
	}
	for i := range sessions {
		sessions[i].Status = models.NormalizeStatus(sessions[i].Status)
	}
	return sessions, nil
}

func scheduledAtRange(from, to string) (bson.M, error) {
	timeQuery := bson.M{}
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, fmt.Errorf("invalid 'from' date %q: %w", from, err)
		}
		timeQuery["$gte"] = t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, fmt.Errorf("invalid 'to' date %q: %w", to, err)
		}
		timeQuery["$lt"] = t
	}
	return timeQuery, nil
}

// GetBookedDates returns the dates within [from, to) carrying a non-terminal
// session with the therapist. Blocking is per calendar date: one pending or
// confirmed session hides the whole date from the booking calendar.
func (r *MongoSessionRepo) GetBookedDates(ctx context.Context, therapistID string, from, to time.Time) (map[string]bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{
		"therapistId": therapistID,
		"status":      bson.M{"$in": nonTerminalStatuses},
		"scheduledAt": bson.M{"$gte": from, "$lt": to},
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetProjection(bson.M{"scheduledAt": 1}))
	if err != nil {
		return nil, fmt.Errorf("error fetching booked dates for therapist %s: %w", therapistID, err)
	}
	defer cursor.Close(ctx)

	booked := make(map[string]bool)
	for cursor.Next(ctx) {
		var doc struct {
			ScheduledAt time.Time `bson:"scheduledAt"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding booked date: %w", err)
		}
		booked[doc.ScheduledAt.Format("2006-01-02")] = true
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booked dates: %w", err)
	}
	return booked, nil
}
