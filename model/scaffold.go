package model

import (
	"fmt"
	"strings"
)

func renderModel(namespace, model string, fillable, guarded []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<?php\n\nnamespace %s;\n\n", namespace)
	fmt.Fprintln(&b, `use Illuminate\Database\Eloquent\Factories\HasFactory;`)
	fmt.Fprintln(&b, `use Illuminate\Database\Eloquent\Model;`)
	fmt.Fprintf(&b, "\nclass %s extends Model\n{\n", model)
	fmt.Fprintln(&b, "    use HasFactory;")
	fmt.Fprintf(&b, "\n    protected $fillable = %s;\n", phpArray(fillable, "        ", "    "))
	fmt.Fprintf(&b, "\n    protected $guarded = %s;\n", phpArray(guarded, "        ", "    "))
	fmt.Fprintln(&b, "}")
	return b.String()
}

func renderFactory(namespace, model string, fillable []string) string {
	var b strings.Builder
	fmt.Fprint(&b, "<?php\n\nnamespace Database\\Factories;\n\n")
	fmt.Fprintf(&b, "use %s\\%s;\n", namespace, model)
	fmt.Fprintln(&b, `use Illuminate\Database\Eloquent\Factories\Factory;`)
	fmt.Fprintf(&b, "\nclass %sFactory extends Factory\n{\n", model)
	fmt.Fprintf(&b, "    protected $model = %s::class;\n\n", model)
	fmt.Fprintln(&b, "    public function definition()\n    {\n        return [")
	for _, c := range fillable {
		fmt.Fprintf(&b, "            '%s' => $this->faker->word,\n", c)
	}
	fmt.Fprintln(&b, "        ];\n    }\n}")
	return b.String()
}

func phpArray(items []string, itemIndent, closeIndent string) string {
	if len(items) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteString("[\n")
	for _, it := range items {
		fmt.Fprintf(&b, "%s'%s',\n", itemIndent, it)
	}
	b.WriteString(closeIndent + "]")
	return b.String()
}
