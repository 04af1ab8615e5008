package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const jsSample = `import { readFile } from './fs-utils';
import path from 'path';

export function main() {
  return readFile('x');
}

const handler = (req, res) => res.end();

export class App {
  run() {}
}
`

func TestJavaScript_Extract(t *testing.T) {
	syms := extract(t, JavaScript, "src/app.js", jsSample)

	assert.ElementsMatch(t, []string{"main", "handler"}, functionNames(syms))
	assert.Equal(t, "handler(req, res)", findFunction(t, syms, "handler").Signature)

	fs := findImport(t, syms, "./fs-utils")
	assert.False(t, fs.External)
	assert.Equal(t, []string{"readFile"}, fs.Symbols)
	assert.True(t, findImport(t, syms, "path").External)

	assert.ElementsMatch(t, []string{"main", "App"}, exportNames(syms))

	if assert.Len(t, syms.Classes, 1) {
		assert.Equal(t, "App", syms.Classes[0].Name)
		assert.Equal(t, []string{"run"}, syms.Classes[0].Methods)
	}
	assert.Empty(t, syms.Types)
}
