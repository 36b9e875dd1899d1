package dto

type RegisterDeviceRequest struct {
	IMEI                   string `json:"imei"`
	Make                   string `json:"make"`
	ModelName              string `json:"model_name"`
	Color                  string `json:"color"`
	StorageCapacity        string `json:"storage_capacity"`
	DistinguishingFeatures string `json:"distinguishing_features"`
}
