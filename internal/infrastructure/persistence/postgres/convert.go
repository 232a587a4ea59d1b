package postgres

import (
	"time"

	"github.com/rafabene/avaliapro-backend/internal/domain/entities"
	"github.com/rafabene/avaliapro-backend/internal/domain/valueobjects"
)

// Conversores compartilhados entre repositórios (associações preloaded)

func userToEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:           model.ID,
		Email:        email,
		Name:         model.Name,
		PasswordHash: model.PasswordHash,
		Address:      model.Address,
		Role:         entities.Role(model.Role),
		CreatedAt:    time.Unix(model.CreatedAt, 0),
		UpdatedAt:    time.Unix(model.UpdatedAt, 0),
	}, nil
}

func storeToEntity(model *StoreModel) (*entities.Store, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	store := &entities.Store{
		ID:            model.ID,
		Name:          model.Name,
		Email:         email,
		Address:       model.Address,
		OwnerID:       model.OwnerID,
		AverageRating: model.AverageRating,
		TotalRatings:  model.TotalRatings,
		CreatedAt:     time.Unix(model.CreatedAt, 0),
		UpdatedAt:     time.Unix(model.UpdatedAt, 0),
	}

	if model.Owner != nil {
		owner, err := userToEntity(model.Owner)
		if err != nil {
			return nil, err
		}
		store.Owner = owner
	}

	for i := range model.Ratings {
		rating, err := ratingToEntity(&model.Ratings[i])
		if err != nil {
			return nil, err
		}
		store.Ratings = append(store.Ratings, rating)
	}

	return store, nil
}

func ratingToEntity(model *RatingModel) (*entities.Rating, error) {
	rating := &entities.Rating{
		ID:        model.ID,
		Value:     model.Value,
		Comment:   model.Comment,
		UserID:    model.UserID,
		StoreID:   model.StoreID,
		CreatedAt: time.Unix(model.CreatedAt, 0),
		UpdatedAt: time.Unix(model.UpdatedAt, 0),
	}

	if model.User != nil {
		user, err := userToEntity(model.User)
		if err != nil {
			return nil, err
		}
		rating.User = user
	}

	if model.Store != nil {
		store, err := storeToEntity(model.Store)
		if err != nil {
			return nil, err
		}
		rating.Store = store
	}

	return rating, nil
}
