package pattern

import (
	"io/fs"
	"strings"
	"sync"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
)

// Location is the defining source unit of a method and the 1-based lines
// bounding its body. Body lines are strictly between Open and Close.
type Location struct {
	Lines []string
	Start int // first line of the declaration
	Open  int // line of the opening brace
	Close int // line of the closing brace
}

// Locator finds pattern classes and the source of their methods.
// Repeated calls must return byte-identical text.
type Locator interface {
	Class(name string) (*ClassSource, error)
	Locate(class, method string) (Location, error)
}

// FSLocator reads one PHP source unit from an fs.FS and caches it.
type FSLocator struct {
	FS   fs.FS
	Path string

	mu      sync.Mutex
	lines   []string
	src     []byte
	classes map[string]*ClassSource
}

// NewFSLocator returns a locator for the source unit at path inside fsys.
func NewFSLocator(fsys fs.FS, path string) *FSLocator {
	return &FSLocator{FS: fsys, Path: path}
}

func (l *FSLocator) load() error {
	if l.src != nil {
		return nil
	}
	if l.FS == nil {
		return errors.Reflection("no filesystem for pattern %s", l.Path)
	}
	src, err := fs.ReadFile(l.FS, l.Path)
	if err != nil {
		return errors.WithHint(
			errors.WrapReflection(err, "reading pattern source"),
			"check that the pattern file exists and is readable",
		)
	}
	l.src = src
	l.lines = strings.Split(string(src), "\n")
	l.classes = make(map[string]*ClassSource)
	return nil
}

// Class scans the source unit for the class declared as name.
func (l *FSLocator) Class(name string) (*ClassSource, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.load(); err != nil {
		return nil, err
	}
	if cls, ok := l.classes[name]; ok {
		return cls, nil
	}
	cls, err := scanClass(l.src, name)
	if err != nil {
		return nil, errors.Wrapf(err, "scanning %s", l.Path)
	}
	l.classes[name] = cls
	return cls, nil
}

// Locate returns the location of class::method.
func (l *FSLocator) Locate(class, method string) (Location, error) {
	cls, err := l.Class(class)
	if err != nil {
		return Location{}, err
	}
	m, ok := cls.Method(method)
	if !ok {
		return Location{}, errors.Reflection("method %s::%s not found in %s", class, method, l.Path)
	}
	if err = checkBoundaries(l.lines, m); err != nil {
		return Location{}, err
	}
	return Location{
		Lines: l.lines,
		Start: m.Start,
		Open:  m.Open,
		Close: m.Close,
	}, nil
}
