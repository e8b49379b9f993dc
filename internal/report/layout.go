package report

import (
	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/rules"
)

var (
	colSurname    = plainColumn("Фамилия", func(v *model.AttendeeView) string { return v.Surname })
	colName       = plainColumn("Имя", func(v *model.AttendeeView) string { return v.Name })
	colPatronymic = plainColumn("Отчество", func(v *model.AttendeeView) string { return stringText(v.Patronymic) })
	colRole       = plainColumn("Роль", func(v *model.AttendeeView) string { return RoleName(v.Role) })
	colValid      = plainColumn("Валидность", func(v *model.AttendeeView) string { return flagText(v.Valid) })
	colWarning    = plainColumn("Возрастное огр.", func(v *model.AttendeeView) string { return warningText(v.ShowAlcoholWarning) })

	colSquad = fieldColumn("Отряд", rules.FieldSquad, func(v *model.AttendeeView) string {
		return stringText(v.SquadDisplayName)
	})
	colLocation = fieldColumn("Место события", rules.FieldEventLocation, func(v *model.AttendeeView) string {
		return LocationName(v.EventLocation)
	})
	colHasAllergies   = fieldColumn("Аллергии", rules.FieldHasAllergies, func(v *model.AttendeeView) string { return boolText(v.HasAllergies) })
	colAllergyDetails = fieldColumn("Аллергии дет.", rules.FieldAllergies, allergyDetails)
	colBowling        = fieldColumn("Боулинг", rules.FieldWantBowling, func(v *model.AttendeeView) string { return boolText(v.WantBowling) })
	colAlcohol        = fieldColumn("Алкоголь", rules.FieldAlcoholPreferences, func(v *model.AttendeeView) string { return stringText(v.AlcoholPreferences) })
	colCar            = fieldColumn("Машина", rules.FieldHasCar, func(v *model.AttendeeView) string { return boolText(v.HasCar) })
	colSpeech         = fieldColumn("Слово на сцене", rules.FieldNeedSpeech, func(v *model.AttendeeView) string { return boolText(v.NeedSpeech) })
	colSpeechWith     = fieldColumn("С кем слово", rules.FieldSpeechCompanions, func(v *model.AttendeeView) string { return stringText(v.SpeechCompanions) })
	colTableWith      = fieldColumn("С кем сидеть", rules.FieldTableCompanions, func(v *model.AttendeeView) string { return stringText(v.TableCompanions) })
	colPerform        = fieldColumn("Выступление", rules.FieldWillPerform, func(v *model.AttendeeView) string { return boolText(v.WillPerform) })
	colPerformWith    = fieldColumn("С кем номер", rules.FieldPerformanceCompanions, func(v *model.AttendeeView) string { return stringText(v.PerformanceCompanions) })
)

func foodColumn(header string) column {
	return fieldColumn(header, rules.FieldFoodPreferences, func(v *model.AttendeeView) string {
		return stringText(v.FoodPreferences)
	})
}

func birthDateColumn(header string) column {
	return fieldColumn(header, rules.FieldBirthDate, func(v *model.AttendeeView) string {
		return dateText(v.BirthDate)
	})
}

// The fighter sheet has always carried one trailing unlabeled column.
var colBlank = plainColumn("", func(*model.AttendeeView) string { return "" })

var completeLayout = []column{
	indexColumn(), colSurname, colName, colPatronymic, colRole,
	colSquad, birthDateColumn("Дата рожд."), colLocation, colHasAllergies,
	colAllergyDetails, foodColumn("Предпочт. еда"), colBowling,
	colAlcohol, colCar, colSpeech, colSpeechWith,
	colTableWith, colPerform, colPerformWith,
	colWarning, colValid,
}

var guestLayout = []column{
	indexColumn(), colSurname, colName, colPatronymic, colSquad, colSpeech,
}

var noviceLayout = []column{
	indexColumn(), colSurname, colName, colPatronymic, birthDateColumn("Дата рождения"),
	colLocation, colHasAllergies, colAllergyDetails, foodColumn("Предпочтения в еде"),
	colBowling, colWarning, colValid,
}

var fighterLayout = []column{
	indexColumn(), colSurname, colName, colPatronymic, colLocation,
	colHasAllergies, colAllergyDetails, foodColumn("Предпочтения в еде"), colBowling,
	colAlcohol, colCar, colValid, colBlank,
}

var veteranLayout = []column{
	indexColumn(), colSurname, colName, colPatronymic, colLocation,
	colHasAllergies, colAllergyDetails, foodColumn("Предпочтения в еде"), colBowling, colAlcohol, colCar,
	colSpeech, colSpeechWith, colTableWith, colPerform, colPerformWith, colValid,
}

func layoutFor(scope Scope) ([]column, error) {
	role, ok := scope.Role()
	if !ok {
		return completeLayout, nil
	}
	switch role {
	case model.RoleGuest:
		return guestLayout, nil
	case model.RoleNovice:
		return noviceLayout, nil
	case model.RoleFighter:
		return fighterLayout, nil
	case model.RoleVeteran:
		return veteranLayout, nil
	}
	return nil, &model.InvalidEnumError{Kind: "role", Value: string(role)}
}

// Headers returns the fixed header row for scope.
func Headers(scope Scope) ([]string, error) {
	cols, err := layoutFor(scope)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.header
	}
	return out, nil
}
