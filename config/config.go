package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Sound struct {
	NFFT        int     `mapstructure:"N_FFT"`
	MelDim      int     `mapstructure:"Mel_Dim"`
	FrameLength int     `mapstructure:"Frame_Length"`
	FrameShift  int     `mapstructure:"Frame_Shift"`
	SampleRate  int     `mapstructure:"Sample_Rate"`
	MelFMin     float64 `mapstructure:"Mel_F_Min"`
	MelFMax     float64 `mapstructure:"Mel_F_Max"`
	F0Min       float64 `mapstructure:"F0_Min"`
	F0Max       float64 `mapstructure:"F0_Max"`
}

type Store struct {
	Path         string `mapstructure:"Path"`
	MetadataFile string `mapstructure:"Metadata_File"`
}

type Train struct {
	TrainPattern Store `mapstructure:"Train_Pattern"`
	EvalPattern  Store `mapstructure:"Eval_Pattern"`
}

type Root struct {
	Pipeline struct {
		Name     string `mapstructure:"Name"`
		LogLevel string `mapstructure:"Log_Level"`
	} `mapstructure:"Pipeline"`
	Sound Sound `mapstructure:"Sound"`
	Train Train `mapstructure:"Train"`

	TokenPath             string `mapstructure:"Token_Path"`
	SpectrogramRangePath  string `mapstructure:"Spectrogram_Range_Info_Path"`
	MelRangePath          string `mapstructure:"Mel_Range_Info_Path"`
	LogF0InfoPath         string `mapstructure:"Log_F0_Info_Path"`
	EnergyInfoPath        string `mapstructure:"Energy_Info_Path"`
	SpeakerInfoPath       string `mapstructure:"Speaker_Info_Path"`
	EmotionInfoPath       string `mapstructure:"Emotion_Info_Path"`
	LanguageInfoPath      string `mapstructure:"Language_Info_Path"`
	GenderInfoPath        string `mapstructure:"Gender_Info_Path"`
	SpeakerAttributesPath string `mapstructure:"Language_and_Gender_Info_by_Speaker_Path"`
}

// Store returns the pattern store selected by the split flag.
func (r *Root) Store(eval bool) Store {
	if eval {
		return r.Train.EvalPattern
	}
	return r.Train.TrainPattern
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Pipeline.Name", "speech-patterns")
	v.SetDefault("Pipeline.Log_Level", "info")

	v.SetDefault("Sound.N_FFT", 1024)
	v.SetDefault("Sound.Mel_Dim", 80)
	v.SetDefault("Sound.Frame_Length", 1024)
	v.SetDefault("Sound.Frame_Shift", 256)
	v.SetDefault("Sound.Sample_Rate", 22050)
	v.SetDefault("Sound.Mel_F_Min", 0)
	v.SetDefault("Sound.Mel_F_Max", 8000)
	v.SetDefault("Sound.F0_Min", 40)
	v.SetDefault("Sound.F0_Max", 800)

	v.SetDefault("Train.Train_Pattern.Metadata_File", "METADATA.GOB")
	v.SetDefault("Train.Eval_Pattern.Metadata_File", "METADATA.GOB")
}

func guessPaths() []string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return []string{
		filepath.Join("config", env, "config.yaml"),
		filepath.Join("src", "shared", "config.yaml"),
	}
}

// Load reads the hyper-parameter file at path. An empty path falls back to
// the CONFIG_ENV locations. PATTERN_* environment variables override file values.
func Load(path string) (*Root, error) {
	if path == "" {
		for _, p := range guessPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
		if path == "" {
			return nil, errors.New("config: no config file given and none found in default locations")
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("PATTERN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "config: read %s", path)
	}
	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(err, "config: decode %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *Root) Validate() error {
	s := r.Sound
	switch {
	case s.NFFT <= 0, s.MelDim <= 0, s.FrameLength <= 0, s.FrameShift <= 0, s.SampleRate <= 0:
		return errors.Errorf("config: sound sizes must be positive: %+v", s)
	case s.FrameShift > s.FrameLength:
		return errors.Errorf("config: Frame_Shift %d exceeds Frame_Length %d", s.FrameShift, s.FrameLength)
	case s.FrameLength > s.NFFT:
		return errors.Errorf("config: Frame_Length %d exceeds N_FFT %d", s.FrameLength, s.NFFT)
	case s.MelFMax < 0, s.MelFMax != 0 && s.MelFMax <= s.MelFMin:
		return errors.Errorf("config: Mel_F_Max %v must exceed Mel_F_Min %v", s.MelFMax, s.MelFMin)
	case s.MelFMax == 0 && s.MelFMin >= float64(s.SampleRate)/2:
		return errors.Errorf("config: Mel_F_Min %v must be below Nyquist", s.MelFMin)
	case s.F0Min <= 0 || s.F0Max <= s.F0Min:
		return errors.Errorf("config: invalid F0 range [%v, %v]", s.F0Min, s.F0Max)
	case r.Train.TrainPattern.Path == "" || r.Train.EvalPattern.Path == "":
		return errors.New("config: Train_Pattern.Path and Eval_Pattern.Path are required")
	}
	return nil
}
