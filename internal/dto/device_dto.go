package dto

type RegisterDeviceRequest struct {
	Fingerprint string `json:"fingerprint" validate:"required,min=8,max=128"`
}

type RegisterDeviceResponse struct {
	Registered  bool `json:"registered"`
	DeviceCount int  `json:"device_count"`
	DeviceLimit int  `json:"device_limit"`
}
