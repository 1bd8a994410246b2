package common

//Settings is filled by viper from settings.yaml, flags and OFF_* environment variables
type Settings struct {
	Log      LogSettings
	Storage  StorageSettings
	Registry RegistrySettings
}

type LogSettings struct {
	Level string
}

type StorageSettings struct {
	//Backend is leveldb or datastore
	Backend string
	//Path is a data directory, empty keeps state in memory
	Path string
}

type RegistrySettings struct {
	//Escalation is linear or none
	Escalation  string
	StepPercent uint32 `mapstructure:"step_percent"`
}
