package models

import "database/sql/driver"

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

var MealTypes = newVocabulary("meal_type", MealBreakfast, MealLunch, MealDinner, MealSnack)

func (t *MealType) Scan(src any) error          { return MealTypes.scan(t, src) }
func (t MealType) Value() (driver.Value, error) { return MealTypes.value(t) }

type FoodCategory string

const (
	FoodProtein   FoodCategory = "protein"
	FoodCarb      FoodCategory = "carb"
	FoodVegetable FoodCategory = "vegetable"
	FoodFruit     FoodCategory = "fruit"
	FoodDairy     FoodCategory = "dairy"
	FoodFat       FoodCategory = "fat"
	FoodOther     FoodCategory = "other"
)

var FoodCategories = newVocabulary("food category",
	FoodProtein, FoodCarb, FoodVegetable, FoodFruit, FoodDairy, FoodFat, FoodOther)

func (c *FoodCategory) Scan(src any) error          { return FoodCategories.scan(c, src) }
func (c FoodCategory) Value() (driver.Value, error) { return FoodCategories.value(c) }

type Unit string

const (
	UnitGrams    Unit = "g"
	UnitOunces   Unit = "oz"
	UnitCups     Unit = "cups"
	UnitPieces   Unit = "pcs"
	UnitServings Unit = "servings"
)

var Units = newVocabulary("unit", UnitGrams, UnitOunces, UnitCups, UnitPieces, UnitServings)

func (u *Unit) Scan(src any) error          { return Units.scan(u, src) }
func (u Unit) Value() (driver.Value, error) { return Units.value(u) }

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var Genders = newVocabulary("gender", GenderMale, GenderFemale, GenderOther)

func (g *Gender) Scan(src any) error          { return Genders.scan(g, src) }
func (g Gender) Value() (driver.Value, error) { return Genders.value(g) }

type FitnessGoal string

const (
	GoalWeightLoss          FitnessGoal = "weight_loss"
	GoalMuscleGain          FitnessGoal = "muscle_gain"
	GoalMaintenance         FitnessGoal = "maintenance"
	GoalGeneralFitness      FitnessGoal = "general_fitness"
	GoalAthleticPerformance FitnessGoal = "athletic_performance"
)

var FitnessGoals = newVocabulary("fitness goal",
	GoalWeightLoss, GoalMuscleGain, GoalMaintenance, GoalGeneralFitness, GoalAthleticPerformance)

func (g *FitnessGoal) Scan(src any) error          { return FitnessGoals.scan(g, src) }
func (g FitnessGoal) Value() (driver.Value, error) { return FitnessGoals.value(g) }

type TimePreference string

const (
	TimeMorning   TimePreference = "morning"
	TimeAfternoon TimePreference = "afternoon"
	TimeEvening   TimePreference = "evening"
	TimeFlexible  TimePreference = "flexible"
)

var TimePreferences = newVocabulary("time preference", TimeMorning, TimeAfternoon, TimeEvening, TimeFlexible)

func (p *TimePreference) Scan(src any) error          { return TimePreferences.scan(p, src) }
func (p TimePreference) Value() (driver.Value, error) { return TimePreferences.value(p) }

// ExerciseType doubles as the survey's exercise preference and an exercise log's type.
type ExerciseType string

const (
	ExerciseStrength    ExerciseType = "strength"
	ExerciseCardio      ExerciseType = "cardio"
	ExerciseFlexibility ExerciseType = "flexibility"
	ExerciseHIIT        ExerciseType = "hiit"
)

var ExerciseTypes = newVocabulary("exercise type", ExerciseStrength, ExerciseCardio, ExerciseFlexibility, ExerciseHIIT)

func (t *ExerciseType) Scan(src any) error          { return ExerciseTypes.scan(t, src) }
func (t ExerciseType) Value() (driver.Value, error) { return ExerciseTypes.value(t) }

type PreferredSport string

var PreferredSports = newVocabulary[PreferredSport]("preferred sport",
	"running", "cycling", "swimming", "football", "basketball", "tennis", "yoga", "martial_arts", "hiking")

type MedicalCondition string

var MedicalConditions = newVocabulary[MedicalCondition]("medical condition",
	"diabetes", "hypertension", "heart_disease", "asthma", "arthritis", "thyroid_disorder", "high_cholesterol")

type Medication string

var Medications = newVocabulary[Medication]("medication",
	"insulin", "metformin", "blood_pressure", "antidepressants", "statins", "thyroid", "inhaler")

type Allergy string

var Allergies = newVocabulary[Allergy]("allergy",
	"nuts", "dairy", "gluten", "shellfish", "eggs", "soy", "fish")

type PastInjury string

var PastInjuries = newVocabulary[PastInjury]("past injury",
	"knee", "back", "shoulder", "ankle", "wrist", "hip", "neck")

type ExerciseCategory string

var ExerciseCategories = newVocabulary[ExerciseCategory]("exercise category",
	"weight_training", "running", "cycling", "swimming", "yoga", "bodyweight", "other")

func (c *ExerciseCategory) Scan(src any) error          { return ExerciseCategories.scan(c, src) }
func (c ExerciseCategory) Value() (driver.Value, error) { return ExerciseCategories.value(c) }

type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

var Intensities = newVocabulary("intensity", IntensityLow, IntensityMedium, IntensityHigh)

func (i *Intensity) Scan(src any) error          { return Intensities.scan(i, src) }
func (i Intensity) Value() (driver.Value, error) { return Intensities.value(i) }
