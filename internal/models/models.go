package models

import "time"

type User struct {
	ID                int        `db:"id" json:"id"`
	Email             string     `db:"email" json:"email"`
	Username          string     `db:"username" json:"username"`
	HashedPassword    string     `db:"hashed_password" json:"-"`
	IsActive          bool       `db:"is_active" json:"is_active"`
	IsSuperuser       bool       `db:"is_superuser" json:"is_superuser"`
	IsVerified        bool       `db:"is_verified" json:"is_verified"`
	FullName          *string    `db:"full_name" json:"full_name,omitempty"`
	ResetToken        *string    `db:"reset_token" json:"-"`
	ResetTokenExpires *time.Time `db:"reset_token_expires" json:"-"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
}

// ResetTokenValid reports whether the stored reset token is present and unexpired at now.
func (u *User) ResetTokenValid(now time.Time) bool {
	return u.ResetToken != nil && u.ResetTokenExpires != nil && !u.ResetTokenExpires.Before(now)
}

type UserProfile struct {
	ID     int `db:"id" json:"id"`
	UserID int `db:"user_id" json:"user_id"`

	Age          int     `db:"age" json:"age"`
	Gender       Gender  `db:"gender" json:"gender"`
	Height       float64 `db:"height" json:"height"`
	Weight       float64 `db:"weight" json:"weight"`
	TargetWeight float64 `db:"target_weight" json:"target_weight"`

	MedicalConditions TagList[MedicalCondition] `db:"medical_conditions" json:"medical_conditions"`
	Medications       TagList[Medication]       `db:"medications" json:"medications"`
	Allergies         TagList[Allergy]          `db:"allergies" json:"allergies"`
	PastInjuries      TagList[PastInjury]       `db:"past_injuries" json:"past_injuries"`

	FitnessGoal     FitnessGoal             `db:"fitness_goal" json:"fitness_goal"`
	TimePreference  TimePreference          `db:"time_preference" json:"time_preference"`
	ExerciseTypes   TagList[ExerciseType]   `db:"exercise_types" json:"exercise_types"`
	PreferredSports TagList[PreferredSport] `db:"preferred_sports" json:"preferred_sports"`
	ExerciseNotes   *string                 `db:"exercise_notes" json:"exercise_notes,omitempty"`

	DailyCalorieGoal int     `db:"daily_calorie_goal" json:"daily_calorie_goal"`
	ProteinGoal      int     `db:"protein_goal" json:"protein_goal"`
	CarbsGoal        int     `db:"carbs_goal" json:"carbs_goal"`
	FatGoal          int     `db:"fat_goal" json:"fat_goal"`
	WaterGoal        float64 `db:"water_goal" json:"water_goal"`

	SleepHours    float64 `db:"sleep_hours" json:"sleep_hours"`
	StressLevel   int     `db:"stress_level" json:"stress_level"`
	MealFrequency int     `db:"meal_frequency" json:"meal_frequency"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// FoodPortion is the shape shared by logged meal components and favorite templates.
// Macros are nil when the user left them unset.
type FoodPortion struct {
	FoodItem string       `db:"food_item" json:"food_item"`
	Category FoodCategory `db:"category" json:"category"`
	Quantity float64      `db:"quantity" json:"quantity"`
	Unit     Unit         `db:"unit" json:"unit"`
	Calories float64      `db:"calories" json:"calories"`
	Protein  *float64     `db:"protein" json:"protein"`
	Carbs    *float64     `db:"carbs" json:"carbs"`
	Fat      *float64     `db:"fat" json:"fat"`
}

type MealLog struct {
	ID         int             `db:"id" json:"id"`
	UserID     int             `db:"user_id" json:"-"`
	Date       time.Time       `db:"date" json:"date"`
	MealType   MealType        `db:"meal_type" json:"meal_type"`
	IsFavorite bool            `db:"is_favorite" json:"is_favorite"`
	Notes      *string         `db:"notes" json:"notes,omitempty"`
	Components []MealComponent `db:"-" json:"components"`
}

type MealComponent struct {
	ID        int `db:"id" json:"id"`
	MealLogID int `db:"meal_log_id" json:"-"`
	Position  int `db:"position" json:"-"`
	FoodPortion
}

type FavoriteMeal struct {
	ID         int                     `db:"id" json:"id"`
	UserID     int                     `db:"user_id" json:"-"`
	Name       string                  `db:"name" json:"name"`
	MealType   MealType                `db:"meal_type" json:"meal_type"`
	CreatedAt  time.Time               `db:"created_at" json:"created_at"`
	Components []FavoriteMealComponent `db:"-" json:"components"`
}

type FavoriteMealComponent struct {
	ID             int `db:"id" json:"id"`
	FavoriteMealID int `db:"favorite_meal_id" json:"-"`
	Position       int `db:"position" json:"-"`
	FoodPortion
}

type KnowledgeCategory struct {
	ID          int       `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Content     string    `db:"content" json:"content"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Comment struct {
	ID         int       `db:"id" json:"id"`
	CategoryID int       `db:"category_id" json:"category_id"`
	UserID     int       `db:"user_id" json:"user_id"`
	Content    string    `db:"content" json:"content"`
	Likes      int       `db:"likes" json:"likes"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// CommentWithAuthor is a comment joined with its author's username.
type CommentWithAuthor struct {
	Comment
	Username string `db:"username" json:"username"`
}

type ExerciseLog struct {
	ID                  int                 `db:"id" json:"id"`
	UserID              int                 `db:"user_id" json:"-"`
	Date                time.Time           `db:"date" json:"date"`
	ExerciseType        ExerciseType        `db:"exercise_type" json:"exercise_type"`
	Duration            float64             `db:"duration" json:"duration"`
	Intensity           Intensity           `db:"intensity" json:"intensity"`
	TotalCaloriesBurned *int                `db:"total_calories_burned" json:"total_calories_burned,omitempty"`
	Notes               *string             `db:"notes" json:"notes,omitempty"`
	Components          []ExerciseComponent `db:"-" json:"components"`
}

type ExerciseComponent struct {
	ID             int              `db:"id" json:"id"`
	ExerciseLogID  int              `db:"exercise_log_id" json:"-"`
	Position       int              `db:"position" json:"-"`
	ExerciseName   string           `db:"exercise_name" json:"exercise_name"`
	Category       ExerciseCategory `db:"category" json:"category"`
	Sets           *int             `db:"sets" json:"sets,omitempty"`
	Reps           *int             `db:"reps" json:"reps,omitempty"`
	Weight         *float64         `db:"weight" json:"weight,omitempty"`
	Distance       *float64         `db:"distance" json:"distance,omitempty"`
	CaloriesBurned *int             `db:"calories_burned" json:"calories_burned,omitempty"`
}
