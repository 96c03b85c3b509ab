package display

// Atom names a well-known ICCCM/EWMH atom the core cares about. Interning
// these as a closed Go type, rather than passing bare strings everywhere,
// catches typos at compile time; unrecognized atoms still round-trip as
// plain strings through Connector.Atom/LookupAtom.
type Atom string

const (
	AtomWMProtocols    Atom = "WM_PROTOCOLS"
	AtomWMDeleteWindow Atom = "WM_DELETE_WINDOW"
	AtomWMTakeFocus    Atom = "WM_TAKE_FOCUS"
	AtomWMHints        Atom = "WM_HINTS"
	AtomWMState        Atom = "WM_STATE"
	AtomWMName         Atom = "WM_NAME"
	AtomWMClass        Atom = "WM_CLASS"
	AtomWMNormalHints  Atom = "WM_NORMAL_HINTS"
	AtomWMTransientFor Atom = "WM_TRANSIENT_FOR"

	AtomNetActiveWindow       Atom = "_NET_ACTIVE_WINDOW"
	AtomNetClientList         Atom = "_NET_CLIENT_LIST"
	AtomNetClientListStacking Atom = "_NET_CLIENT_LIST_STACKING"
	AtomNetCurrentDesktop     Atom = "_NET_CURRENT_DESKTOP"
	AtomNetDesktopNames       Atom = "_NET_DESKTOP_NAMES"
	AtomNetNumberOfDesktops   Atom = "_NET_NUMBER_OF_DESKTOPS"
	AtomNetSupported          Atom = "_NET_SUPPORTED"
	AtomNetSupportingWmCheck  Atom = "_NET_SUPPORTING_WM_CHECK"
	AtomNetWMDesktop          Atom = "_NET_WM_DESKTOP"
	AtomNetWMName             Atom = "_NET_WM_NAME"
	AtomNetWMState            Atom = "_NET_WM_STATE"
	AtomNetWMStateFullscreen  Atom = "_NET_WM_STATE_FULLSCREEN"
	AtomNetWMWindowType       Atom = "_NET_WM_WINDOW_TYPE"

	AtomNetWindowTypeDesktop      Atom = "_NET_WM_WINDOW_TYPE_DESKTOP"
	AtomNetWindowTypeDock         Atom = "_NET_WM_WINDOW_TYPE_DOCK"
	AtomNetWindowTypeToolbar      Atom = "_NET_WM_WINDOW_TYPE_TOOLBAR"
	AtomNetWindowTypeMenu         Atom = "_NET_WM_WINDOW_TYPE_MENU"
	AtomNetWindowTypeUtility      Atom = "_NET_WM_WINDOW_TYPE_UTILITY"
	AtomNetWindowTypeSplash       Atom = "_NET_WM_WINDOW_TYPE_SPLASH"
	AtomNetWindowTypeDialog       Atom = "_NET_WM_WINDOW_TYPE_DIALOG"
	AtomNetWindowTypeDropdownMenu Atom = "_NET_WM_WINDOW_TYPE_DROPDOWN_MENU"
	AtomNetWindowTypePopupMenu    Atom = "_NET_WM_WINDOW_TYPE_POPUP_MENU"
	AtomNetWindowTypeNotification Atom = "_NET_WM_WINDOW_TYPE_NOTIFICATION"
	AtomNetWindowTypeNormal       Atom = "_NET_WM_WINDOW_TYPE_NORMAL"
)

// EWMHSupported lists the atoms NetSupported must advertise on the root
// window.
var EWMHSupported = []Atom{
	AtomWMProtocols, AtomWMTakeFocus, AtomWMState, AtomWMDeleteWindow,
	AtomNetActiveWindow, AtomNetCurrentDesktop, AtomNetNumberOfDesktops,
	AtomNetWMName, AtomNetWMState, AtomNetWMStateFullscreen, AtomNetWMWindowType,
}

// AutoFloatWindowTypes lists window types the core floats unconditionally,
// regardless of user configuration.
var AutoFloatWindowTypes = []Atom{
	AtomNetWindowTypeDialog, AtomNetWindowTypeDropdownMenu,
	AtomNetWindowTypeNotification, AtomNetWindowTypeMenu,
	AtomNetWindowTypePopupMenu, AtomNetWindowTypeToolbar,
	AtomNetWindowTypeUtility, AtomNetWindowTypeDesktop,
}

// UnmanagedWindowTypes lists window types the core never tracks at all.
var UnmanagedWindowTypes = []Atom{
	AtomNetWindowTypeSplash, AtomNetWindowTypeDock,
	AtomNetWindowTypeNotification, AtomNetWindowTypeToolbar,
	AtomNetWindowTypeUtility,
}
