package domain

// DefaultService is the secure-store service identifier shared by the
// device identity entry and every token entry.
const DefaultService = "com.openclaw.the-fireplace"
