package postgres

// UserModel é o model GORM para usuários
type UserModel struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string `gorm:"type:varchar(60);not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Address      string `gorm:"type:varchar(400);not null"`
	Role         string `gorm:"type:varchar(20);not null;index"`
	CreatedAt    int64  `gorm:"autoCreateTime;index"`
	UpdatedAt    int64  `gorm:"autoUpdateTime"`

	// Cascatas: apagar o usuário remove as lojas dele e as avaliações
	// que ele fez
	OwnedStores []StoreModel  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Ratings     []RatingModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserModel) TableName() string {
	return "users"
}

// StoreModel é o model GORM para lojas.
// average_rating e total_ratings são derivados: escritos somente pelo
// agregador via UpdateAggregate.
type StoreModel struct {
	ID            string  `gorm:"type:uuid;primaryKey"`
	Name          string  `gorm:"type:varchar(60);not null"`
	Email         string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Address       string  `gorm:"type:varchar(400);not null"`
	OwnerID       *string `gorm:"type:uuid;index"`
	AverageRating float64 `gorm:"type:numeric(2,1);not null;default:0"`
	TotalRatings  int64   `gorm:"not null;default:0"`
	CreatedAt     int64   `gorm:"autoCreateTime;index"`
	UpdatedAt     int64   `gorm:"autoUpdateTime"`

	Owner *UserModel `gorm:"foreignKey:OwnerID"`

	// Cascata: apagar a loja remove as avaliações dela
	Ratings []RatingModel `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
}

func (StoreModel) TableName() string {
	return "stores"
}

// RatingModel é o model GORM para avaliações.
// Índice único (user_id, store_id): no máximo uma avaliação por par.
type RatingModel struct {
	ID        string  `gorm:"type:uuid;primaryKey"`
	Value     int     `gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5"`
	Comment   *string `gorm:"type:text"`
	UserID    string  `gorm:"type:uuid;not null;uniqueIndex:idx_user_store_rating"`
	StoreID   string  `gorm:"type:uuid;not null;uniqueIndex:idx_user_store_rating;index"`
	CreatedAt int64   `gorm:"autoCreateTime;index"`
	UpdatedAt int64   `gorm:"autoUpdateTime"`

	User  *UserModel  `gorm:"foreignKey:UserID"`
	Store *StoreModel `gorm:"foreignKey:StoreID"`
}

func (RatingModel) TableName() string {
	return "ratings"
}
