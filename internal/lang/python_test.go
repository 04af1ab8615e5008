package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pySample = `import os
import numpy as np
from .models import User, Role
from typing import List
from . import helpers

def fetch(url: str) -> str:
    return url

@decorated
def tagged():
    pass

class Repo:
    def save(self):
        pass

    def _flush(self):
        pass

def outer():
    def inner():
        pass
`

func TestPython_Functions(t *testing.T) {
	syms := extract(t, Python, "app/repo.py", pySample)

	assert.ElementsMatch(t, []string{"fetch", "tagged", "outer"}, functionNames(syms))
	assert.Equal(t, "fetch(url: str) -> str", findFunction(t, syms, "fetch").Signature)
}

func TestPython_Imports(t *testing.T) {
	syms := extract(t, Python, "app/repo.py", pySample)

	osImp := findImport(t, syms, "os")
	assert.True(t, osImp.External)
	assert.Equal(t, []string{"os"}, osImp.Symbols)

	np := findImport(t, syms, "numpy")
	assert.True(t, np.External)

	models := findImport(t, syms, ".models")
	assert.False(t, models.External)
	assert.Equal(t, []string{"User", "Role"}, models.Symbols)

	typing := findImport(t, syms, "typing")
	assert.True(t, typing.External)
	assert.Equal(t, []string{"List"}, typing.Symbols)

	dot := findImport(t, syms, ".")
	assert.False(t, dot.External)
	assert.Equal(t, []string{"helpers"}, dot.Symbols)
}

func TestPython_ClassMethods(t *testing.T) {
	syms := extract(t, Python, "app/repo.py", pySample)

	require.Len(t, syms.Classes, 1)
	assert.Equal(t, "Repo", syms.Classes[0].Name)
	assert.Equal(t, []string{"save", "_flush"}, syms.Classes[0].Methods)
}

func TestPython_ExportsDefaultToTopLevel(t *testing.T) {
	syms := extract(t, Python, "app/repo.py", pySample)

	assert.Equal(t, []Export{
		{Name: "fetch", Kind: "function"},
		{Name: "tagged", Kind: "function"},
		{Name: "Repo", Kind: "class"},
		{Name: "outer", Kind: "function"},
	}, syms.Exports)
}

func TestPython_DunderAllOverridesExports(t *testing.T) {
	syms := extract(t, Python, "app/api.py", `
__all__ = ["fetch", "Repo"]

def fetch():
    pass

def helper():
    pass

class Repo:
    pass
`)
	assert.Equal(t, []Export{
		{Name: "fetch", Kind: "variable"},
		{Name: "Repo", Kind: "variable"},
	}, syms.Exports)
}

func TestPython_WildcardImport(t *testing.T) {
	syms := extract(t, Python, "app/x.py", "from os.path import *\n")
	imp := findImport(t, syms, "os.path")
	assert.Equal(t, []string{"*"}, imp.Symbols)
}
