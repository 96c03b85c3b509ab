package layout

// FloatingLayout is a no-frills layout that leaves window positioning
// entirely alone: it never emits Resize actions, since floating windows
// keep whatever geometry they already have.
type FloatingLayout struct{}

// NewFloating constructs a FloatingLayout.
func NewFloating() *FloatingLayout { return &FloatingLayout{} }

func (f *FloatingLayout) Name() string { return "floating" }

func (f *FloatingLayout) Style() Style { return Floating }

func (f *FloatingLayout) Generate(ctxt Ctxt) []Action { return nil }

// ReceiveUpdate is a no-op: no Update currently defined applies to a
// floating layout.
func (f *FloatingLayout) ReceiveUpdate(msg any) {}
