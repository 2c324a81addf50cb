package handler

import (
	"context"
	"net/http"

	"github.com/EdsonAvelino/StrikeTec-backend/internal/database"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/middleware"
	model "github.com/EdsonAvelino/StrikeTec-backend/internal/models"
	"github.com/EdsonAvelino/StrikeTec-backend/internal/utils"
	"github.com/lib/pq"
)

type subscribeRequest struct {
	PlanID string `json:"planId" validate:"required"`
}

// GetPlans liste les offres d'abonnement disponibles
func GetPlans(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	rows, err := database.DB.Query(ctx, `
		SELECT id, name, price, period, features
		FROM plans
		ORDER BY price ASC
	`)
	if err != nil {
		utils.Error(w, "could not query plans", err)
		return
	}
	defer rows.Close()

	var plans []model.Plan
	for rows.Next() {
		var p model.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Period,
			pq.Array(&p.Features)); err != nil {
			utils.Error(w, "could not scan plan row", err)
			return
		}
		plans = append(plans, p)
	}

	utils.Success(w, plans)
}

// Subscribe active un abonnement pour l'utilisateur authentifié
func Subscribe(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	var req subscribeRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.Error(w, "invalid subscribe payload", err)
		return
	}

	ctx := context.Background()

	plan, err := fetchPlan(ctx, req.PlanID)
	if err != nil {
		utils.ErrorSimple(w, "plan not found")
		return
	}

	var active int
	err = database.DB.QueryRow(ctx, `
		SELECT COUNT(*) FROM subscriptions
		WHERE user_id = $1 AND status = $2 AND expires_at > NOW()
	`, user.ID, model.SubscriptionStatusActive).Scan(&active)
	if err != nil {
		utils.Error(w, "could not check subscriptions", err)
		return
	}
	if active > 0 {
		utils.ErrorSimple(w, "you already have an active subscription")
		return
	}

	days := 30
	if plan.Period == "yearly" {
		days = 365
	}

	var sub model.Subscription
	sub.UserID = user.ID
	sub.PlanID = plan.ID
	sub.Plan = plan
	sub.Status = model.SubscriptionStatusActive

	err = database.DB.QueryRow(ctx, `
		INSERT INTO subscriptions(user_id, plan_id, status, started_at, expires_at)
		VALUES($1, $2, $3, NOW(), NOW() + make_interval(days => $4))
		RETURNING id, started_at, expires_at
	`, user.ID, plan.ID, model.SubscriptionStatusActive, days).
		Scan(&sub.ID, &sub.StartedAt, &sub.ExpiresAt)
	if err != nil {
		utils.Error(w, "could not create subscription", err)
		return
	}

	utils.Success(w, sub)
}

// CancelSubscription annule l'abonnement actif
func CancelSubscription(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	ctx := context.Background()

	res, err := database.DB.Exec(ctx, `
		UPDATE subscriptions SET status = $1
		WHERE user_id = $2 AND status = $3
	`, model.SubscriptionStatusCanceled, user.ID, model.SubscriptionStatusActive)
	if err != nil {
		utils.Error(w, "could not cancel subscription", err)
		return
	}

	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, "no active subscription")
		return
	}

	utils.Message(w, "subscription canceled")
}

// GetMySubscription retourne l'abonnement courant, le cas échéant
func GetMySubscription(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, "user not found in context", err)
		return
	}

	ctx := context.Background()

	var sub model.Subscription
	var plan model.Plan
	err = database.DB.QueryRow(ctx, `
		SELECT s.id, s.user_id, s.plan_id, s.status, s.started_at, s.expires_at,
			p.id, p.name, p.price, p.period, p.features
		FROM subscriptions s
		INNER JOIN plans p ON s.plan_id = p.id
		WHERE s.user_id = $1 AND s.status = $2 AND s.expires_at > NOW()
		ORDER BY s.started_at DESC
		LIMIT 1
	`, user.ID, model.SubscriptionStatusActive).Scan(
		&sub.ID, &sub.UserID, &sub.PlanID, &sub.Status, &sub.StartedAt, &sub.ExpiresAt,
		&plan.ID, &plan.Name, &plan.Price, &plan.Period, pq.Array(&plan.Features),
	)
	if err != nil {
		utils.Success(w, nil)
		return
	}

	sub.Plan = &plan
	utils.Success(w, sub)
}

func fetchPlan(ctx context.Context, planID string) (*model.Plan, error) {
	var p model.Plan
	err := database.DB.QueryRow(ctx, `
		SELECT id, name, price, period, features FROM plans WHERE id = $1
	`, planID).Scan(&p.ID, &p.Name, &p.Price, &p.Period, pq.Array(&p.Features))
	if err != nil {
		return nil, err
	}
	return &p, nil
}
