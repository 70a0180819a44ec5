package classes

// Hook identifiers the allocator owns. User code may not register methods
// under these names; the user-facing constructor is constructorName.
const (
	reservedAllocHook = "alloc"
	reservedNewHook   = "new"

	constructorName = "init"
)

// ClassDef is a class descriptor: two ordered method registries, one for
// instance methods and one for class methods, plus a single superclass link.
// The sentinel root class is the only class without one. Classes are built
// during definition and never mutated afterwards except by adding methods.
type ClassDef struct {
	Name string

	super        *ClassDef
	methods      map[string]*Method
	classMethods map[string]*Method

	methodOrder      []string
	classMethodOrder []string

	engine *Engine
}

func newClassDef(name string, super *ClassDef, engine *Engine) *ClassDef {
	return &ClassDef{
		Name:         name,
		super:        super,
		methods:      make(map[string]*Method),
		classMethods: make(map[string]*Method),
		engine:       engine,
	}
}

// Super returns the superclass link, nil for the root class.
func (c *ClassDef) Super() *ClassDef {
	return c.super
}

// DefineMethod registers an instance method. Registering under a reserved
// hook identifier fails with a ReservedNameError.
func (c *ClassDef) DefineMethod(name string, fn MethodFunc) error {
	if err := c.checkDefinable(name, fn); err != nil {
		return err
	}
	if _, exists := c.methods[name]; !exists {
		c.methodOrder = append(c.methodOrder, name)
	}
	c.methods[name] = &Method{Name: name, Fn: fn}
	return nil
}

// DefineClassMethod registers a class (static) method under the same
// reserved-name rules as DefineMethod.
func (c *ClassDef) DefineClassMethod(name string, fn MethodFunc) error {
	if err := c.checkDefinable(name, fn); err != nil {
		return err
	}
	if _, exists := c.classMethods[name]; !exists {
		c.classMethodOrder = append(c.classMethodOrder, name)
	}
	c.classMethods[name] = &Method{Name: name, Fn: fn}
	return nil
}

// MustDefineMethod is DefineMethod panicking on error, for static
// registration at host start-up.
func (c *ClassDef) MustDefineMethod(name string, fn MethodFunc) {
	if err := c.DefineMethod(name, fn); err != nil {
		panic(err)
	}
}

// MustDefineClassMethod is DefineClassMethod panicking on error.
func (c *ClassDef) MustDefineClassMethod(name string, fn MethodFunc) {
	if err := c.DefineClassMethod(name, fn); err != nil {
		panic(err)
	}
}

// MethodNames lists instance method names in definition order.
func (c *ClassDef) MethodNames() []string {
	return append([]string(nil), c.methodOrder...)
}

// ClassMethodNames lists class method names in definition order.
func (c *ClassDef) ClassMethodNames() []string {
	return append([]string(nil), c.classMethodOrder...)
}

func (c *ClassDef) checkDefinable(name string, fn MethodFunc) error {
	if name == "" {
		return newError(ErrTypeInvalidArgument, "method name cannot be empty")
	}
	if fn == nil {
		return newError(ErrTypeInvalidArgument, "method %s has no callable", name)
	}
	if name == reservedAllocHook || name == reservedNewHook {
		return newError(ErrTypeReservedName, "%s is reserved for the allocator and cannot be redefined", name)
	}
	return nil
}
