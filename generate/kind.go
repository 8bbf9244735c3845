// Package generate выбирает вид связи по длине пути и рендерит объявление метода модели.
package generate

// Kind вид связи, определяется только числом переходов
type Kind int

const (
	Direct Kind = iota + 1
	ThroughOne
	ThroughMany
)

// SelectKind: 1 переход - прямая, 2 - через одну таблицу, больше - глубокая.
// Для пустого пути возвращается 0.
func SelectKind(steps int) Kind {
	switch {
	case steps <= 0:
		return 0
	case steps == 1:
		return Direct
	case steps == 2:
		return ThroughOne
	default:
		return ThroughMany
	}
}

func (k Kind) String() string {
	switch k {
	case Direct:
		return "direct"
	case ThroughOne:
		return "through-one"
	case ThroughMany:
		return "through-many"
	default:
		return "unknown"
	}
}

// relation метод Eloquent и тип возвращаемого значения
type relation struct {
	method     string
	doc        string
	returnType string
}

var relations = map[Kind][2]relation{
	Direct: {
		{"hasMany", "HasMany", `\Illuminate\Database\Eloquent\Relations\HasMany`},
		{"belongsTo", "BelongsTo", `\Illuminate\Database\Eloquent\Relations\BelongsTo`},
	},
	ThroughOne: {
		{"hasManyThrough", "HasManyThrough", `\Illuminate\Database\Eloquent\Relations\HasManyThrough`},
		{"belongsToThrough", "BelongsToThrough", `\Znck\Eloquent\Relations\BelongsToThrough`},
	},
	ThroughMany: {
		{"hasManyDeep", "HasManyDeep", `\Staudenmeir\EloquentHasManyDeep\HasManyDeep`},
		{"belongsToDeep", "BelongsToDeep", ""},
	},
}

// Method имя вызова Eloquent для направления
func (k Kind) Method(reversed bool) string {
	return k.relation(reversed).method
}

func (k Kind) relation(reversed bool) relation {
	pair := relations[k]
	if reversed {
		return pair[1]
	}
	return pair[0]
}
