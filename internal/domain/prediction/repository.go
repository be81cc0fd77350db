package prediction

import "github.com/riskibarqy/toto-league/internal/domain/entity"

type Repository = entity.Store[Prediction]
