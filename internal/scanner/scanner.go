package scanner

import (
	"database/sql"

	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/utils"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// ScanTrainingSession scanne une ligne SQL vers une TrainingSession
func ScanTrainingSession(s rowScanner) (*model.TrainingSession, error) {
	var sess model.TrainingSession
	var battleID sql.NullString
	var gameID sql.NullInt64
	var bestReaction, gameScore, gameDistance sql.NullFloat64

	err := s.Scan(
		&sess.ID, &sess.UserID, &battleID, &gameID, &sess.Type,
		&sess.StartTime, &sess.EndTime,
		&sess.AvgSpeed, &sess.AvgForce, &sess.PunchesCount,
		&sess.MaxSpeed, &sess.MaxForce, &bestReaction,
		&gameScore, &gameDistance, &sess.Archived,
		&sess.CreatedAt, &sess.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	sess.BattleID = utils.NullStringToPointer(battleID)
	sess.GameID = utils.NullInt64ToPointer(gameID)
	sess.BestReactionTime = utils.NullFloat64ToPointer(bestReaction)
	sess.GameScore = utils.NullFloat64ToPointer(gameScore)
	sess.GameDistance = utils.NullFloat64ToPointer(gameDistance)

	return &sess, nil
}

// ScanTrainingSessionWithUser scanne une session avec le sous-objet utilisateur
func ScanTrainingSessionWithUser(s rowScanner) (*model.TrainingSession, error) {
	var sess model.TrainingSession
	var battleID sql.NullString
	var gameID sql.NullInt64
	var bestReaction, gameScore, gameDistance sql.NullFloat64
	var user model.UserSummary
	var photo sql.NullString

	err := s.Scan(
		&sess.ID, &sess.UserID, &battleID, &gameID, &sess.Type,
		&sess.StartTime, &sess.EndTime,
		&sess.AvgSpeed, &sess.AvgForce, &sess.PunchesCount,
		&sess.MaxSpeed, &sess.MaxForce, &bestReaction,
		&gameScore, &gameDistance, &sess.Archived,
		&sess.CreatedAt, &sess.UpdatedAt,
		&user.ID, &user.FirstName, &user.LastName, &photo,
	)
	if err != nil {
		return nil, err
	}

	sess.BattleID = utils.NullStringToPointer(battleID)
	sess.GameID = utils.NullInt64ToPointer(gameID)
	sess.BestReactionTime = utils.NullFloat64ToPointer(bestReaction)
	sess.GameScore = utils.NullFloat64ToPointer(gameScore)
	sess.GameDistance = utils.NullFloat64ToPointer(gameDistance)
	user.Photo = utils.NullStringToString(photo)
	sess.User = &user

	return &sess, nil
}

// ScanSessionRound scanne une ligne SQL vers un SessionRound
func ScanSessionRound(s rowScanner) (*model.SessionRound, error) {
	var r model.SessionRound
	err := s.Scan(
		&r.ID, &r.SessionID, &r.Number, &r.StartTime, &r.EndTime,
		&r.AvgSpeed, &r.AvgForce, &r.PunchesCount, &r.MaxSpeed, &r.MaxForce,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ScanBattle scanne une ligne SQL vers un Battle avec les deux participants
func ScanBattle(s rowScanner) (*model.Battle, error) {
	var b model.Battle
	var winnerID sql.NullString
	var challenger, opponent model.UserSummary
	var chPhoto, opPhoto sql.NullString

	err := s.Scan(
		&b.ID, &b.ChallengerID, &b.OpponentID, &b.Status, &b.Type,
		&winnerID, &b.ChallengerScore, &b.OpponentScore,
		&b.CreatedAt, &b.UpdatedAt,
		&challenger.ID, &challenger.FirstName, &challenger.LastName, &chPhoto,
		&opponent.ID, &opponent.FirstName, &opponent.LastName, &opPhoto,
	)
	if err != nil {
		return nil, err
	}

	b.WinnerID = utils.NullStringToPointer(winnerID)
	challenger.Photo = utils.NullStringToString(chPhoto)
	opponent.Photo = utils.NullStringToString(opPhoto)
	b.Challenger = &challenger
	b.Opponent = &opponent

	return &b, nil
}

// ScanFeedPost scanne une publication du feed avec son auteur
func ScanFeedPost(s rowScanner) (*model.FeedPost, error) {
	var p model.FeedPost
	var imageURL sql.NullString
	var sessionID sql.NullString
	var author model.UserSummary
	var photo sql.NullString

	err := s.Scan(
		&p.ID, &p.UserID, &p.Body, &imageURL, &sessionID,
		&p.Likes, &p.UserLiked,
		&p.CreatedAt, &p.UpdatedAt,
		&author.ID, &author.FirstName, &author.LastName, &photo,
	)
	if err != nil {
		return nil, err
	}

	p.ImageURL = utils.NullStringToString(imageURL)
	p.SessionID = utils.NullStringToPointer(sessionID)
	author.Photo = utils.NullStringToString(photo)
	p.Author = &author

	return &p, nil
}

// ScanEvent scanne un événement
func ScanEvent(s rowScanner) (*model.Event, error) {
	var e model.Event
	var description, location, imageURL sql.NullString

	err := s.Scan(
		&e.ID, &e.Name, &description, &location, &imageURL,
		&e.Capacity, &e.Participants, &e.StartsAt, &e.EndsAt, &e.Registered,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Description = utils.NullStringToString(description)
	e.Location = utils.NullStringToString(location)
	e.ImageURL = utils.NullStringToString(imageURL)

	return &e, nil
}
